package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func toRow(t *domain.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (row taskRow) toDomain() domain.Task {
	t := domain.Task{
		ID:          row.ID,
		OwnerID:     row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.DueDate != nil {
		d := row.DueDate.UTC()
		t.DueDate = &d
	}
	return t
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	row := toRow(task)
	row.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	task.ID = row.ID
	return nil
}

// ListByOwner returns the owner's tasks oldest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var rows []taskRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	t := row.toDomain()
	return &t, nil
}

// Update overwrites the mutable columns of the row matching (id, user_id).
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	res := r.db.WithContext(ctx).
		Model(&taskRow{}).
		Where("id = ? AND user_id = ?", task.ID, task.OwnerID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"priority":    string(task.Priority),
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&taskRow{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
