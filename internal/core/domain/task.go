package domain

import (
	"strings"
	"time"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in progress"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the user-assigned importance of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewTask builds a task for ownerID, filling status and priority defaults.
// It is the only place defaults are applied.
func NewTask(ownerID, title, description string, status TaskStatus, priority TaskPriority, dueDate *time.Time, now time.Time) *Task {
	if status == "" {
		status = StatusTodo
	}
	if priority == "" {
		priority = PriorityMedium
	}
	return &Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BelongsTo reports whether userID owns the task.
func (t *Task) BelongsTo(userID string) bool {
	return t != nil && userID != "" && t.OwnerID == userID
}

// IsOverdue reports whether the task has a due date before now and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Validation("title is required")
	}
	return nil
}
