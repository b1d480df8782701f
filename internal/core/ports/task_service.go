package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/query"
)

// CreateTaskInput carries the fields a user may set when creating a task.
// Empty Status and Priority fall back to the domain defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// OptionalDate distinguishes "not sent" from "sent as null".
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

// UpdateTaskInput is a partial update: nil pointers leave the field unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     OptionalDate
}

// TaskService exposes task CRUD scoped to the authenticated owner.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	// View runs the query engine over the owner's tasks.
	View(ctx context.Context, ownerID string, opts query.Options) (*query.Result, error)
}
