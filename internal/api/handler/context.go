package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/api/middleware"
	"github.com/taskdesk/task-manager/internal/core/domain"
)

// currentUser returns the user ID bound by the Auth middleware. A missing ID
// means the route was mounted without the guard; treat it as unauthenticated.
func currentUser(c echo.Context) (string, error) {
	id, ok := middleware.UserIDFrom(c.Request().Context())
	if !ok {
		return "", domain.ErrMissingCredential
	}
	return id, nil
}
