// Package export renders reports as spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nnsolutions/isms/internal/core/domain"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheet = "Sheet1"

var reportHeadings = []string{
	"ID", "Title", "Project", "Name", "Created By", "Designation",
	"Status", "Date", "Day", "Report", "Mobile", "Email",
}

var weeklyHeadings = []string{"Weekly Summary", "Attachment"}

// XLSX implements ports.ReportExporter with excelize.
type XLSX struct{}

func NewXLSX() XLSX { return XLSX{} }

// Reports writes one row per report under a heading row. Weekly workbooks
// carry two extra columns.
func (XLSX) Reports(kind domain.ReportKind, reports []*domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headings := reportHeadings
	if kind == domain.ReportWeekly {
		headings = append(append([]string{}, reportHeadings...), weeklyHeadings...)
	}
	if err := setRow(f, 1, toAny(headings)); err != nil {
		return nil, err
	}

	for i, r := range reports {
		row := []any{
			r.ID, r.Title, r.ProjectName, r.Name, r.CreatedBy, r.Designation,
			r.Status, r.Date, r.Day, r.ReportContent, r.MobileNumber, r.Email,
		}
		if kind == domain.ReportWeekly {
			row = append(row, r.WeeklySummary, r.AttachmentName)
		}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name offered for kind.
func Filename(kind domain.ReportKind) string {
	return fmt.Sprintf("%s-reports.xlsx", kind)
}

func setRow(f *excelize.File, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
