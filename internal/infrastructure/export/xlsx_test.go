package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nnsolutions/isms/internal/core/domain"
)

func readRows(t *testing.T, b []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestXLSX_DailyReports(t *testing.T) {
	b, err := NewXLSX().Reports(domain.ReportDaily, []*domain.Report{
		{ID: "DR-1", Title: "Daily Report", Name: "Ana", Status: "Pending", Date: "2026-03-04"},
		{ID: "DR-2", Title: "Daily Report", Name: "Ben", Status: "Approved"},
	})
	require.NoError(t, err)

	rows := readRows(t, b)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Len(t, rows[0], len(reportHeadings))
	assert.Equal(t, []string{"DR-1", "Daily Report", "", "Ana"}, rows[1][:4])
	assert.Equal(t, "Approved", rows[2][6])
}

func TestXLSX_WeeklyAddsColumns(t *testing.T) {
	b, err := NewXLSX().Reports(domain.ReportWeekly, []*domain.Report{
		{ID: "WR-1", Email: "ana@example.com", WeeklySummary: "shipped login", AttachmentName: "notes.pdf"},
	})
	require.NoError(t, err)

	rows := readRows(t, b)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], len(reportHeadings)+len(weeklyHeadings))
	assert.Equal(t, "Weekly Summary", rows[0][12])
	assert.Equal(t, "notes.pdf", rows[1][13])
	assert.Len(t, reportHeadings, 12, "weekly columns must not leak into the shared headings")
}

func TestXLSX_EmptyHasHeadingsOnly(t *testing.T) {
	b, err := NewXLSX().Reports(domain.ReportDaily, nil)
	require.NoError(t, err)
	assert.Len(t, readRows(t, b), 1)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "weekly-reports.xlsx", Filename(domain.ReportWeekly))
}
