package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFrom returns the user ID stored by Auth, if any.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// Auth rejects requests without a valid bearer token and binds the token's
// user ID to the request context. Nothing downstream runs on failure.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrMissingCredential
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrInvalidToken
			}

			userID, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}
