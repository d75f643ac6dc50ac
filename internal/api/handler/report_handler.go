package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/api/metrics"
	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
	"github.com/nnsolutions/isms/internal/infrastructure/export"
)

// ReportHandler serves one report collection: daily or weekly.
type ReportHandler struct {
	reportService ports.ReportService
	kind          domain.ReportKind
}

func NewReportHandler(reportService ports.ReportService, kind domain.ReportKind) *ReportHandler {
	return &ReportHandler{reportService: reportService, kind: kind}
}

type reportRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ProjectName    string `json:"projectName"`
	Designation    string `json:"designation"`
	Name           string `json:"name"`
	CreatedBy      string `json:"createdBy"`
	Status         string `json:"status"`
	Date           string `json:"date"`
	Day            string `json:"day"`
	ReportContent  string `json:"reportContent" validate:"required"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email" validate:"omitempty,email"`
	WeeklySummary  string `json:"weeklySummary"`
	AttachmentName string `json:"attachmentName"`
}

func (r reportRequest) toDomain(kind domain.ReportKind) domain.Report {
	rep := domain.Report{
		ID:            r.ID,
		Kind:          kind,
		Title:         r.Title,
		ProjectName:   r.ProjectName,
		Designation:   r.Designation,
		Name:          r.Name,
		CreatedBy:     r.CreatedBy,
		Status:        r.Status,
		Date:          r.Date,
		Day:           r.Day,
		ReportContent: r.ReportContent,
		MobileNumber:  r.MobileNumber,
		Email:         r.Email,
	}
	if kind == domain.ReportWeekly {
		rep.WeeklySummary = r.WeeklySummary
		rep.AttachmentName = r.AttachmentName
	}
	return rep
}

// List returns all reports of this kind.
//
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      401  {object}  map[string]any
// @Router       /api/daily-reports [get]
// @Router       /api/weekly-reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	reports, err := h.reportService.List(c.Request().Context(), h.kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Create submits a report and records it in the audit trail.
//
// @Summary      Submit report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportRequest  true  "Report"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /api/daily-reports [post]
// @Router       /api/weekly-reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.Create(c.Request().Context(), req.toDomain(h.kind), actor)
	if err != nil {
		return err
	}
	metrics.ReportsSubmittedTotal.WithLabelValues(string(h.kind)).Inc()

	return c.JSON(http.StatusCreated, report)
}

// Delete removes a report by its string ID.
//
// @Summary      Delete report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  successResponse
// @Router       /api/daily-reports/{id} [delete]
// @Router       /api/weekly-reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	err = h.reportService.Delete(c.Request().Context(), h.kind, c.Param("id"), actor)
	if errors.Is(err, domain.ErrReportNotFound) {
		return c.JSON(http.StatusNotFound, successResponse{Message: h.kind.Label() + " report not found"})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: h.kind.Label() + " report deleted"})
}

// Export downloads the reports of ?type= (daily by default) as a workbook.
//
// @Summary      Export reports
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        type  query     string  false  "daily or weekly"
// @Success      200   {file}    file
// @Failure      400   {object}  map[string]any
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	kind := h.kind
	if t := c.QueryParam("type"); t != "" {
		var err error
		if kind, err = domain.ParseReportKind(t); err != nil {
			return err
		}
	}

	b, err := h.reportService.Export(c.Request().Context(), kind)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", export.Filename(kind)))
	return c.Blob(http.StatusOK, export.ContentType, b)
}
