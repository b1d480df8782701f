package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTask_FillsDefaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	task := NewTask("u1", "Buy milk", "", "", "", nil, now)

	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, "u1", task.OwnerID)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.UpdatedAt)
	assert.Nil(t, task.DueDate)
}

func TestNewTask_KeepsExplicitValues(t *testing.T) {
	task := NewTask("u1", "Ship", "desc", StatusDone, PriorityHigh, nil, time.Now())

	assert.Equal(t, StatusDone, task.Status)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestTask_BelongsTo(t *testing.T) {
	task := &Task{OwnerID: "alice"}

	assert.True(t, task.BelongsTo("alice"))
	assert.False(t, task.BelongsTo("bob"))
	assert.False(t, task.BelongsTo(""))

	var missing *Task
	assert.False(t, missing.BelongsTo("alice"))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	assert.True(t, (&Task{Status: StatusTodo, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Task{Status: StatusDone, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Task{Status: StatusTodo, DueDate: &tomorrow}).IsOverdue(now))
	assert.False(t, (&Task{Status: StatusTodo}).IsOverdue(now))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("x"))

	err := ValidateTitle("   ")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "title is required", err.Error())
}

func TestError_KindClassification(t *testing.T) {
	assert.True(t, errors.Is(ErrUsernameTaken, ErrConflict))
	assert.True(t, errors.Is(ErrInvalidCredentials, ErrAuthentication))
	assert.True(t, errors.Is(ErrTaskNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrTaskNotFound, ErrAuthentication))
}
