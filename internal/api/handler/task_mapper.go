package handler

import (
	"errors"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Value,
	}
}

func toUpdateInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     ports.OptionalDate{Set: req.DueDate.Set, Value: req.DueDate.Value},
	}
}

// bindError keeps validation messages raised while decoding (bad due dates)
// and reports everything else as a malformed payload.
func bindError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) && errors.Is(de, domain.ErrValidation) {
		return de
	}
	return domain.Validation("invalid payload")
}
