package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/pkg/metrics"
)

// maxPasswordBytes is the most input bcrypt hashes.
const maxPasswordBytes = 72

// Claims is the JWT payload of a session token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

var errPasswordTooLong = domain.Validation("password must be at most 72 bytes")

// AuthService implements registration, login and stateless token verification.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	hashCost  int
	now       func() time.Time
	logger    zerolog.Logger

	// dummyHash is compared against when the username is unknown so both
	// login failure paths run one bcrypt comparison.
	dummyHash []byte
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock overrides the time source used for token issue and expiry checks.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithHashCost sets the bcrypt cost. Values outside bcrypt's range are ignored.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

// WithLogger attaches a logger; the default discards output.
func WithLogger(logger zerolog.Logger) AuthOption {
	return func(s *AuthService) { s.logger = logger }
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, opts ...AuthOption) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = domain.TokenTTL
	}
	s := &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.hashCost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = dummy
	return s, nil
}

// Register creates a user and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return "", domain.Validation("username and password required")
	}
	if len(password) > maxPasswordBytes {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return "", errPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errPasswordTooLong
		}
		return "", err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		}
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return s.generateToken(user.ID)
}

// Login checks credentials and returns a fresh session token. Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return "", domain.Validation("username and password required")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	match := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	if user == nil || !match {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.generateToken(user.ID)
}

// VerifyToken validates signature and expiry and returns the bound user ID.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidToken
	}

	metrics.TokenVerificationsTotal.WithLabelValues("accepted").Inc()
	return claims.UserID, nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
