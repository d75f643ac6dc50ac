package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/core/ports"
)

type MentorHandler struct {
	mentorService ports.MentorService
}

func NewMentorHandler(mentorService ports.MentorService) *MentorHandler {
	return &MentorHandler{mentorService: mentorService}
}

// Performance ranks mentors by audit activity.
//
// @Summary      Mentor performance
// @Tags         mentors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MentorPerformance
// @Router       /api/mentors/performance [get]
func (h *MentorHandler) Performance(c echo.Context) error {
	perf, err := h.mentorService.Performance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perf)
}
