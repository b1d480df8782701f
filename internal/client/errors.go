package client

import (
	"fmt"
	"net/http"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps the HTTP status back to its domain error kind.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusUnauthorized:
		return domain.ErrAuthentication
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}
