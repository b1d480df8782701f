package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/core/query"
	"github.com/taskdesk/task-manager/internal/pkg/metrics"
)

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

// TaskOption customises a TaskService.
type TaskOption func(*TaskService)

// WithTaskClock overrides the time source used for timestamps and overdue checks.
func WithTaskClock(now func() time.Time) TaskOption {
	return func(s *TaskService) { s.now = now }
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger, opts ...TaskOption) *TaskService {
	s := &TaskService{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every task owned by ownerID in storage order.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create stores a new task for ownerID, applying status and priority defaults.
func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, domain.Validation("invalid status")
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, domain.Validation("invalid priority")
	}

	task := domain.NewTask(ownerID, input.Title, input.Description, input.Status, input.Priority, input.DueDate, s.now().UTC())
	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", ownerID).Msg("task created")
	metrics.TaskMutationsTotal.WithLabelValues("create").Inc()
	return task, nil
}

// Update applies a partial update to a task owned by ownerID. A task owned by
// someone else is reported exactly like a missing one.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	if err := validatePatch(input); err != nil {
		return nil, err
	}

	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate.Set {
		task.DueDate = input.DueDate.Value
	}
	task.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", ownerID).Msg("task updated")
	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	return task, nil
}

// Delete permanently removes a task owned by ownerID.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.ownedTask(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", ownerID).Msg("task deleted")
	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	return nil
}

// View filters, sorts and summarises the owner's tasks.
func (s *TaskService) View(ctx context.Context, ownerID string, opts query.Options) (*query.Result, error) {
	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	res := query.Apply(tasks, opts, s.now())
	return &res, nil
}

func (s *TaskService) ownedTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.BelongsTo(ownerID) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func validatePatch(input ports.UpdateTaskInput) error {
	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Status != nil && !input.Status.Valid() {
		return domain.Validation("invalid status")
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return domain.Validation("invalid priority")
	}
	return nil
}
