package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/core/ports"
)

type LogHandler struct {
	logService ports.LogService
}

func NewLogHandler(logService ports.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

type logRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Domain      string `json:"domain"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
	Action      string `json:"action"`
}

type clearLogsResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// List returns the audit trail, newest first.
//
// @Summary      List logs
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LogEntry
// @Failure      401  {object}  map[string]any
// @Router       /api/logs [get]
func (h *LogHandler) List(c echo.Context) error {
	logs, err := h.logService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// Create records a manual audit entry.
//
// @Summary      Create log entry
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logRequest  true  "Log entry"
// @Success      201   {object}  domain.LogEntry
// @Failure      400   {object}  map[string]any
// @Router       /api/logs [post]
func (h *LogHandler) Create(c echo.Context) error {
	var req logRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	entry, err := h.logService.Create(c.Request().Context(), ports.LogInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Clear deletes the whole audit trail.
//
// @Summary      Clear logs
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clearLogsResponse
// @Failure      403  {object}  map[string]any
// @Router       /api/logs/clear [delete]
func (h *LogHandler) Clear(c echo.Context) error {
	n, err := h.logService.Clear(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clearLogsResponse{Message: "All logs cleared successfully", Deleted: n})
}
