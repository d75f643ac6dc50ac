package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/dashboard"
	"github.com/nnsolutions/isms/internal/console/reportform"
	"github.com/nnsolutions/isms/internal/console/stats"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestUsers(t *testing.T) {
	var buf bytes.Buffer
	Users(&buf, []client.UserRecord{
		{ID: "1", Username: "ann", Department: "IT", Status: client.StatusActive},
		{ID: "2", Username: "bob", Department: "HR", Status: client.StatusOffline},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "ann")
	assert.True(t, strings.HasSuffix(lines[2], "Offline"))
}

func TestEmptyTables(t *testing.T) {
	var buf bytes.Buffer
	Users(&buf, nil)
	Logs(&buf, nil)
	assert.Equal(t, "(none)\n(none)\n", buf.String())
}

func TestReportsFormMode(t *testing.T) {
	var buf bytes.Buffer
	Reports(&buf, dashboard.ReportsState{
		Mode:  dashboard.ModeForm,
		Error: "Failed to create report",
		Form:  reportform.Form{Kind: client.Weekly, Name: "ann", WeeklySummary: "shipped"},
	})

	out := buf.String()
	assert.Contains(t, out, "Failed to create report")
	assert.Contains(t, out, "New Weekly Report")
	assert.Contains(t, out, "Weekly summary:")
	assert.Contains(t, out, "shipped")
}

func TestSuperAdminOverviewPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	SuperAdmin(&buf, dashboard.SuperAdminState{
		Stats: stats.SuperAdminStats{TopDomain: stats.Placeholder, MonthYear: "March 2026"},
	})

	out := buf.String()
	assert.Contains(t, out, "Overview March 2026")
	assert.Contains(t, out, "Total users:")
	assert.Contains(t, out, "--")
}

func TestLogsCounts(t *testing.T) {
	var buf bytes.Buffer
	Logs(&buf, []client.LogEntry{
		{Username: "ann", Action: "User Logged In"},
		{Username: "ann", Action: "User Logged Out"},
	})
	assert.True(t, strings.HasPrefix(buf.String(), "1 logins, 1 logouts\n"))
}
