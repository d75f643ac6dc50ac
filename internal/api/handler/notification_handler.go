package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/api/metrics"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const maxInboxLimit = 500

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// notifyRequest accepts taskId as a JSON number or string.
type notifyRequest struct {
	TaskID  json.RawMessage `json:"taskId" swaggertype:"string"`
	Message string          `json:"message" validate:"required"`
}

func (r notifyRequest) taskID() string {
	s := strings.TrimSpace(string(r.TaskID))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}

// Notify pushes a message to the super admin inbox.
//
// @Summary      Notify super admin
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notifyRequest  true  "Notification"
// @Success      200   {object}  domain.Notification
// @Failure      400   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /api/notifications/super-admin [post]
func (h *NotificationHandler) Notify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	n, err := h.notificationService.Notify(c.Request().Context(), req.taskID(), req.Message)
	if err != nil {
		return err
	}
	metrics.NotificationsSentTotal.Inc()

	return c.JSON(http.StatusOK, n)
}

// List returns the most recent notifications, newest first.
//
// @Summary      Super admin inbox
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {array}   domain.Notification
// @Failure      400    {object}  map[string]any
// @Router       /api/notifications/super-admin [get]
func (h *NotificationHandler) List(c echo.Context) error {
	var limit int64
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 || n > maxInboxLimit {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 0 and 500")
		}
		limit = n
	}

	items, err := h.notificationService.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
