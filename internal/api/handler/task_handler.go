package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/core/query"
)

// TaskHandler handles HTTP requests for the caller's own tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields; status and priority default to todo and medium"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), userID, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/tasks/:id. Only fields present in the body change;
// "dueDate": null clears the due date.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

// View handles GET /api/tasks/view.
//
// @Summary      Filtered and sorted view of the caller's tasks with stats
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Case-insensitive match on title or description"
// @Param        status     query     string  false  "all, todo, in progress, done or overdue"
// @Param        priority   query     string  false  "all, low, medium or high"
// @Param        sortBy     query     string  false  "dueDate, priority, status or title"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  query.Result
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Router       /tasks/view [get]
func (h *TaskHandler) View(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	opts := query.DefaultOptions()
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &opts); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&opts); err != nil {
		return err
	}

	res, err := h.service.View(c.Request().Context(), userID, opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
