package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/reportform"
	"github.com/nnsolutions/isms/internal/console/session"
	"github.com/nnsolutions/isms/internal/console/stats"
)

var superSession = &session.Session{Username: "root", Role: "superadmin", Designation: "Director"}

func fillForm(f *reportform.Form) {
	f.Name = "ann"
	f.ReportContent = "wired the poller"
	f.Designation = "Engineer"
	f.ProjectName = "apollo"
	f.MobileNumber = "0700000000"
	f.Email = "ann@example.com"
}

func reportBackend(t *testing.T) *fakeBackend {
	be := newFakeBackend(t)
	be.json("GET /api/daily-reports", http.StatusOK, []map[string]any{
		{"id": "DR-1", "title": "Existing", "createdBy": "bob", "type": "Daily"},
	})
	return be
}

// ---- report submission ----

func TestSuperAdmin_ReportViewModeFromQuery(t *testing.T) {
	be := reportBackend(t)
	s := NewSuperAdmin(deps(be.client(), superSession, &alerts{}))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	assert.Equal(t, ModeForm, s.Snapshot().Reports.Mode)
	assert.False(t, s.Polling(), "report views load once")

	s.Navigate("/super-admin/daily-reports?mode=list")
	assert.Equal(t, SuperDailyReports, s.Snapshot().View)
	assert.Equal(t, ModeList, s.Snapshot().Reports.Mode)
}

func TestSuperAdmin_DraftStartsWithSessionDesignation(t *testing.T) {
	be := reportBackend(t)
	s := NewSuperAdmin(deps(be.client(), superSession, &alerts{}))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	s.EditReport(func(f *reportform.Form) {})

	form := s.Snapshot().Reports.Form
	assert.Equal(t, "Director", form.Designation)
	assert.Equal(t, "2026-03-04", form.Date)
	assert.Equal(t, "Wednesday", form.Day)
}

func TestSuperAdmin_SubmitReportAppendsServerObject(t *testing.T) {
	be := reportBackend(t)
	be.json("POST /api/daily-reports", http.StatusCreated, map[string]any{
		"id": "DR-99", "projectName": "Apollo", "name": "ann", "status": "Pending", "type": "Daily",
	})
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	s.EditReport(fillForm)
	require.NoError(t, s.SubmitReport())

	rep := s.Snapshot().Reports
	require.Len(t, rep.Daily, 2)
	assert.Equal(t, "DR-1", rep.Daily[0].ID)
	assert.Equal(t, client.Report{
		ID: "DR-99", Title: "Apollo", CreatedBy: "ann", Status: "Pending", Type: "Daily",
	}, rep.Daily[1])
	assert.Equal(t, ModeList, rep.Mode)
	assert.Empty(t, rep.Error)
	assert.Equal(t, MsgReportCreated, al.last())
	assert.Equal(t, 1, be.count("POST /api/daily-reports"))
}

func TestSuperAdmin_SubmitReportFailureKeepsListAndForm(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"server message", map[string]any{"error": "database unavailable"}, "database unavailable"},
		{"message preferred", map[string]any{"message": "bad date", "error": "x"}, "bad date"},
		{"fallback", map[string]any{}, MsgReportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := reportBackend(t)
			be.json("POST /api/daily-reports", http.StatusInternalServerError, tt.body)
			al := &alerts{}
			s := NewSuperAdmin(deps(be.client(), superSession, al))
			defer s.Close()

			s.Navigate("/super-admin/daily-reports")
			s.EditReport(fillForm)
			require.Error(t, s.SubmitReport())

			rep := s.Snapshot().Reports
			require.Len(t, rep.Daily, 1)
			assert.Equal(t, "DR-1", rep.Daily[0].ID)
			assert.Equal(t, ModeForm, rep.Mode)
			assert.Equal(t, tt.want, rep.Error)
			assert.Equal(t, tt.want, al.last())
			assert.Equal(t, "ann", rep.Form.Name, "draft survives a failed submit")
			assert.Equal(t, "apollo", rep.Form.ProjectName)
		})
	}
}

func TestSuperAdmin_SubmitReportUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	al := &alerts{}
	s := NewSuperAdmin(deps(client.New(dead.URL), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	s.EditReport(fillForm)
	require.Error(t, s.SubmitReport())

	assert.Equal(t, MsgUnreachable, al.last())
	assert.Empty(t, s.Snapshot().Reports.Daily)
}

func TestSuperAdmin_SundayRejectedBeforeNetwork(t *testing.T) {
	be := reportBackend(t)
	be.json("POST /api/daily-reports", http.StatusCreated, map[string]any{"id": "DR-2"})
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	s.EditReport(fillForm)

	err := s.SetReportDate("2026-03-08")
	require.ErrorIs(t, err, reportform.ErrSunday)
	assert.Equal(t, reportform.SundayMessage, al.last())

	form := s.Snapshot().Reports.Form
	assert.Equal(t, "2026-03-04", form.Date)
	assert.Equal(t, "Wednesday", form.Day)

	// A Sunday that reached the draft some other way is still refused.
	s.EditReport(func(f *reportform.Form) {
		f.Date = "2026-03-08"
		f.Day = "Sunday"
	})
	require.ErrorIs(t, s.SubmitReport(), reportform.ErrSunday)
	assert.Equal(t, 0, be.count("POST /api/daily-reports"))
	assert.Len(t, s.Snapshot().Reports.Daily, 1)
}

func TestSuperAdmin_InvalidDraftNotSent(t *testing.T) {
	be := reportBackend(t)
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/daily-reports")
	require.Error(t, s.SubmitReport())
	assert.Contains(t, al.last(), "is required")
	assert.Equal(t, 0, be.count("POST /api/daily-reports"))
}

// ---- overview ----

func TestSuperAdmin_DashboardStats(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/admins", http.StatusOK, []map[string]any{{"id": 1, "username": "ad"}})
	be.json("GET /api/users", http.StatusOK, staff)
	be.json("GET /api/logs", http.StatusOK, []map[string]any{})

	s := NewSuperAdmin(deps(be.client(), superSession, &alerts{}))
	defer s.Close()

	before := s.Snapshot()
	assert.False(t, before.StatsReady)
	assert.Equal(t, stats.Placeholder, before.Stats.TopDomain)
	assert.Equal(t, "March 2026", before.Stats.MonthYear)

	s.Navigate("/super-admin")
	st := s.Snapshot()
	require.True(t, st.StatsReady)
	assert.Equal(t, 3, st.Stats.TotalUsers)
	assert.Equal(t, 1, st.Stats.TotalAdmins)
	assert.Equal(t, "67%", st.Stats.AverageActivity)
	assert.Equal(t, "IT", st.Stats.TopDomain)
	assert.Equal(t, stats.ProductivityGood, st.Stats.OverallProductivity)
	assert.True(t, s.Polling())
}

func TestSuperAdmin_DashboardIsAllOrNothing(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/admins", http.StatusOK, []map[string]any{{"id": 1, "username": "ad"}})
	be.json("GET /api/users", http.StatusOK, staff)
	be.json("GET /api/logs", http.StatusInternalServerError, map[string]string{"error": "boom"})

	s := NewSuperAdmin(deps(be.client(), superSession, &alerts{}))
	defer s.Close()

	s.Navigate("/super-admin")
	st := s.Snapshot()
	assert.False(t, st.StatsReady)
	assert.Empty(t, st.Admins)
	assert.Empty(t, st.Users)
	assert.Equal(t, "Failed to load dashboard", st.LoadError)
}

// ---- accounts ----

func TestSuperAdmin_DeleteAdmin(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/admins", http.StatusOK, []map[string]any{{"id": 1, "username": "a1"}, {"id": 2, "username": "a2"}})
	be.json("DELETE /api/admins/1", http.StatusOK, map[string]string{"message": "deleted"})
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/view-admins")
	require.NoError(t, s.DeleteAdmin("1"))

	admins := s.Snapshot().Admins
	require.Len(t, admins, 1)
	assert.Equal(t, "a2", admins[0].Username)
	assert.Equal(t, "Admin deleted successfully!", al.last())
}

func TestSuperAdmin_DeleteUserFailureAlerts(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/users", http.StatusOK, staff)
	be.json("DELETE /api/users/1", http.StatusForbidden, map[string]string{"error": "forbidden"})
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.Navigate("/super-admin/view-users")
	require.Error(t, s.DeleteUser("1"))
	assert.Equal(t, "Error: forbidden", al.last())
	assert.Len(t, s.Snapshot().Users, 3)
}

func TestSuperAdmin_SaveAdminDefaultsRole(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/admins", http.StatusOK, []map[string]any{})
	var sent map[string]any
	be.handle("POST /api/admins", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, decodeBody(r, &sent))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9}`))
	})
	al := &alerts{}
	s := NewSuperAdmin(deps(be.client(), superSession, al))
	defer s.Close()

	s.EditAdmin(nil)
	require.NoError(t, s.SaveAdmin(client.UserInput{FullName: "jane doe", Domain: "it ops"}))

	assert.Equal(t, "admin", sent["role"])
	assert.Equal(t, "Jane Doe", sent["fullName"])
	assert.Equal(t, "It Ops", sent["Domain"])
	assert.Equal(t, "Admin created successfully!", al.last())
	assert.Equal(t, SuperViewAdmins, s.Snapshot().View)
}

func TestSuperAdmin_SaveUnreachableReturnsToList(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	al := &alerts{}
	s := NewSuperAdmin(deps(client.New(dead.URL), superSession, al))
	defer s.Close()

	s.EditUser(&client.UserRecord{ID: "4", Username: "dee"})
	require.Error(t, s.SaveUser(client.UserInput{Designation: "Lead"}))

	st := s.Snapshot()
	assert.Equal(t, SuperViewUsers, st.View)
	assert.Nil(t, st.EditingUser)
	assert.Equal(t, MsgUnreachable, al.last())
}

func TestSuperAdmin_ClearLogs(t *testing.T) {
	be := newFakeBackend(t)
	be.json("GET /api/logs", http.StatusOK, []map[string]any{{"id": 1, "action": "User Logged In"}})
	be.json("DELETE /api/logs/clear", http.StatusOK, map[string]string{"message": "cleared"})
	s := NewSuperAdmin(deps(be.client(), superSession, &alerts{}))
	defer s.Close()

	s.Navigate("/super-admin/logs-audit")
	require.Len(t, s.Snapshot().Logs, 1)

	// Later ticks see the cleared trail.
	be.json("GET /api/logs", http.StatusOK, []map[string]any{})
	require.NoError(t, s.ClearLogs())
	assert.Empty(t, s.Snapshot().Logs)
}
