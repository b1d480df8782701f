package ports

import "context"

// TokenVerifier resolves a bearer token to the user ID it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}
