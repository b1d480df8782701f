package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string              `json:"title"       validate:"required"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"      validate:"omitempty,oneof=todo 'in progress' done"`
	Priority    domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     dueDate             `json:"dueDate"`
}

type updateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *domain.TaskStatus   `json:"status"      validate:"omitempty,oneof=todo 'in progress' done"`
	Priority    *domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     dueDate              `json:"dueDate"`
}

// dueDateLayouts are tried in order; browser date inputs send the first form.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339Nano}

// dueDate records whether the field was present in the body and, if so,
// whether it was null. Absent and null are different on update.
type dueDate struct {
	Set   bool
	Value *time.Time
}

func (d *dueDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if bytes.Equal(b, []byte("null")) {
		d.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Validation("dueDate must be a string date")
	}
	if s == "" {
		d.Value = nil
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			d.Value = &t
			return nil
		}
	}
	return domain.Validation("dueDate must be YYYY-MM-DD or RFC 3339")
}

// --- Health ---

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
