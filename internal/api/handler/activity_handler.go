package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/core/ports"
)

// enqueueTimeout bounds how long a request waits for room in a full
// worker buffer.
const enqueueTimeout = 2 * time.Second

// ActivityQueue accepts samples for background processing.
type ActivityQueue interface {
	Enqueue(ctx context.Context, in ports.ActivityInput) error
}

type ActivityHandler struct {
	queue ActivityQueue
}

func NewActivityHandler(queue ActivityQueue) *ActivityHandler {
	return &ActivityHandler{queue: queue}
}

type activityRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email"`
	Action     string `json:"action" validate:"required"`
	AppURL     string `json:"app_url"`
	IdleTime   *int   `json:"idle_time"`
	Timestamp  string `json:"timestamp"`
	Screenshot string `json:"screenshot"`
}

// Record accepts a desktop-agent sample. Processing happens in the
// background, in arrival order per user.
//
// @Summary      Record agent activity
// @Tags         activity
// @Accept       json
// @Produce      json
// @Param        body  body      activityRequest  true  "Agent sample; screenshot is a base64 data URL"
// @Success      202   {object}  successResponse
// @Failure      400   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Failure      503   {object}  map[string]any
// @Router       /activity [post]
// @Router       /api/activity [post]
func (h *ActivityHandler) Record(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), enqueueTimeout)
	defer cancel()

	if err := h.queue.Enqueue(ctx, ports.ActivityInput(req)); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "activity queue is full, retry later").SetInternal(err)
	}

	return c.JSON(http.StatusAccepted, successResponse{Success: true})
}
