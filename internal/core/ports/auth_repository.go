package ports

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// UserRepository is the credential store. Usernames are unique; Create
// returns domain.ErrUsernameTaken when the username is already registered.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername returns domain.ErrUserNotFound when no record matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
