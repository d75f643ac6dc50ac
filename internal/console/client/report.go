package client

import "encoding/json"

// ReportKind selects the daily or weekly report collection.
type ReportKind string

const (
	Daily  ReportKind = "daily"
	Weekly ReportKind = "weekly"
)

func (k ReportKind) path() string {
	if k == Weekly {
		return "/api/weekly-reports"
	}
	return "/api/daily-reports"
}

// Label returns the human readable report type.
func (k ReportKind) Label() string {
	if k == Weekly {
		return "Weekly"
	}
	return "Daily"
}

const (
	ReportPending   = "Pending"
	ReportCompleted = "Completed"
)

// Report is the canonical report schema. The backend and older clients use
// title/projectName and name/createdBy interchangeably; both pairs collapse
// into Title and CreatedBy on decode and are both written on encode.
type Report struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Designation    string `json:"designation"`
	CreatedBy      string `json:"createdBy"`
	Date           string `json:"date"`
	Day            string `json:"day"`
	Status         string `json:"status"`
	ReportContent  string `json:"reportContent"`
	WeeklySummary  string `json:"weeklySummary,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email"`
	Type           string `json:"type,omitempty"`
}

type reportWire struct {
	ID             ID     `json:"id"`
	Title          string `json:"title"`
	ProjectName    string `json:"projectName"`
	Designation    string `json:"designation"`
	Name           string `json:"name"`
	CreatedBy      string `json:"createdBy"`
	Date           string `json:"date"`
	Day            string `json:"day"`
	Status         string `json:"status"`
	ReportContent  string `json:"reportContent"`
	WeeklySummary  string `json:"weeklySummary,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email"`
	Type           string `json:"type,omitempty"`
}

func (r *Report) UnmarshalJSON(b []byte) error {
	var w reportWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = Report{
		ID:             string(w.ID),
		Title:          firstNonEmpty(w.Title, w.ProjectName),
		Designation:    w.Designation,
		CreatedBy:      firstNonEmpty(w.CreatedBy, w.Name),
		Date:           w.Date,
		Day:            w.Day,
		Status:         w.Status,
		ReportContent:  w.ReportContent,
		WeeklySummary:  w.WeeklySummary,
		AttachmentName: w.AttachmentName,
		MobileNumber:   w.MobileNumber,
		Email:          w.Email,
		Type:           w.Type,
	}
	return nil
}

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportWire{
		ID:             ID(r.ID),
		Title:          r.Title,
		ProjectName:    r.Title,
		Designation:    r.Designation,
		Name:           r.CreatedBy,
		CreatedBy:      r.CreatedBy,
		Date:           r.Date,
		Day:            r.Day,
		Status:         r.Status,
		ReportContent:  r.ReportContent,
		WeeklySummary:  r.WeeklySummary,
		AttachmentName: r.AttachmentName,
		MobileNumber:   r.MobileNumber,
		Email:          r.Email,
		Type:           r.Type,
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
