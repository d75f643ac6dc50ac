package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type ReportKind string

const (
	ReportDaily  ReportKind = "daily"
	ReportWeekly ReportKind = "weekly"
)

const ReportPending = "Pending"

// ParseReportKind accepts "daily" or "weekly" in any case.
func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(strings.ToLower(strings.TrimSpace(s))) {
	case ReportDaily:
		return ReportDaily, nil
	case ReportWeekly:
		return ReportWeekly, nil
	}
	return "", ErrInvalidReportType
}

// Label is the capitalised kind carried in the "type" field.
func (k ReportKind) Label() string {
	if k == ReportWeekly {
		return "Weekly"
	}
	return "Daily"
}

// IDPrefix is the prefix of server-generated report IDs.
func (k ReportKind) IDPrefix() string {
	if k == ReportWeekly {
		return "WR-"
	}
	return "DR-"
}

// Report is a daily or weekly staff report. Title/ProjectName and
// Name/CreatedBy are stored separately because legacy clients fill either.
type Report struct {
	ID             string
	Kind           ReportKind
	Title          string
	ProjectName    string
	Designation    string
	Name           string
	CreatedBy      string
	Status         string
	Date           string
	Day            string
	ReportContent  string
	MobileNumber   string
	Email          string
	WeeklySummary  string
	AttachmentName string
	CreatedAt      time.Time
}

type reportJSON struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ProjectName    string `json:"projectName"`
	Designation    string `json:"designation"`
	Name           string `json:"name"`
	CreatedBy      string `json:"createdBy"`
	Status         string `json:"status"`
	Date           string `json:"date"`
	Day            string `json:"day"`
	ReportContent  string `json:"reportContent"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email"`
	WeeklySummary  string `json:"weeklySummary,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
	Type           string `json:"type"`
}

// MarshalJSON renders the wire shape, including the weekly-only fields
// for weekly reports.
func (r Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		ID:            r.ID,
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
		Type:          r.Kind.Label(),
	}
	if r.Kind == ReportWeekly {
		out.WeeklySummary = r.WeeklySummary
		out.AttachmentName = r.AttachmentName
	}
	return json.Marshal(out)
}
