package ports

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// TaskRepository persists tasks. Writes are scoped by (task ID, owner ID) and
// report domain.ErrTaskNotFound when that pair matches nothing.
type TaskRepository interface {
	// Create assigns task.ID and stores the task.
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the owner's tasks in storage order, never nil.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update replaces the mutable fields of the task identified by task.ID and task.OwnerID.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, ownerID, id string) error
}
