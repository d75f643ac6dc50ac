package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Domain      string `json:"domain"`
	AssignedTo  string `json:"assignedTo"`
	UserID      string `json:"userId"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Status    *string `json:"status"`
	IsChecked *bool   `json:"isChecked"`
	Priority  *string `json:"priority"`
	Deadline  *string `json:"deadline"`
}

// List returns all tasks, newest first.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.taskService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create assigns a task.
//
// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	task, err := h.taskService.Create(c.Request().Context(), domain.Task{
		Title:       req.Title,
		Domain:      req.Domain,
		AssignedTo:  req.AssignedTo,
		UserID:      req.UserID,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Update changes a task's title, status, check mark, priority or deadline.
//
// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      404   {object}  map[string]any
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	task, err := h.taskService.Update(c.Request().Context(), id, ports.TaskPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task.
//
// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Task deleted"})
}
