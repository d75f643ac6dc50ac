package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/reportform"
	"github.com/nnsolutions/isms/internal/console/stats"
	"github.com/nnsolutions/isms/internal/console/view"
)

// Super admin dashboard views.
const (
	SuperCreateAdmin    view.ID = "create-admin"
	SuperViewAdmins     view.ID = "view-admins"
	SuperCreateUser     view.ID = "create-user"
	SuperViewUsers      view.ID = "view-users"
	SuperDailyReports   view.ID = "daily-reports"
	SuperWeeklyReports  view.ID = "weekly-reports"
	SuperSystemSettings view.ID = "system-settings"
	SuperLogsAudit      view.ID = "logs-audit"
)

// SuperAdminPrefix is the path of the super admin area.
const SuperAdminPrefix = "/super-admin"

// staffRole is the role filter for the plain staff list.
const staffRole = "User"

func SuperAdminRouter() *view.Router {
	return view.NewRouter(
		view.Rule{Suffixes: []string{"/create-admin"}, View: SuperCreateAdmin},
		view.Rule{Suffixes: []string{"/view-admins"}, View: SuperViewAdmins},
		view.Rule{Suffixes: []string{"/create-user"}, View: SuperCreateUser},
		view.Rule{Suffixes: []string{"/view-users"}, View: SuperViewUsers},
		view.Rule{Suffixes: []string{"/daily-reports"}, View: SuperDailyReports},
		view.Rule{Suffixes: []string{"/weekly-reports"}, View: SuperWeeklyReports},
		view.Rule{Suffixes: []string{"/system-settings"}, View: SuperSystemSettings},
		view.Rule{Suffixes: []string{"/logs-audit"}, View: SuperLogsAudit},
	)
}

// SuperAdminState is a consistent copy of the super admin dashboard.
type SuperAdminState struct {
	View         view.ID
	Admins       []client.UserRecord
	Users        []client.UserRecord
	Logs         []client.LogEntry
	Reports      ReportsState
	Stats        stats.SuperAdminStats
	StatsReady   bool
	EditingAdmin *client.UserRecord
	EditingUser  *client.UserRecord
	LoadError    string
}

type SuperAdmin struct {
	*base

	admins       []client.UserRecord
	users        []client.UserRecord
	logs         []client.LogEntry
	reports      reportBoard
	stats        stats.SuperAdminStats
	statsReady   bool
	editingAdmin *client.UserRecord
	editingUser  *client.UserRecord
}

func NewSuperAdmin(d Deps) *SuperAdmin {
	s := &SuperAdmin{
		base:    newBase(d, SuperAdminPrefix, "superadmin_dashboard"),
		reports: newReportBoard(),
	}
	s.init(SuperAdminRouter(), map[view.ID]view.Spec{
		view.Dashboard:      {Load: s.loadDashboard, Poll: s.loadDashboard},
		SuperCreateAdmin:    {},
		SuperViewAdmins:     {Load: s.loadAdmins, Poll: s.loadAdmins},
		SuperCreateUser:     {},
		SuperViewUsers:      {Load: s.loadUsers, Poll: s.loadUsers},
		SuperDailyReports:   {Load: s.reportsLoader(client.Daily)},
		SuperWeeklyReports:  {Load: s.reportsLoader(client.Weekly)},
		SuperSystemSettings: {},
		SuperLogsAudit:      {Load: s.loadLogs, Poll: s.loadLogs},
	}, d.Interval)
	return s
}

func (s *SuperAdmin) Snapshot() SuperAdminState {
	id, _ := s.Current()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SuperAdminState{
		View:       id,
		Admins:     clone(s.admins),
		Users:      clone(s.users),
		Logs:       clone(s.logs),
		Reports:    s.reports.snapshot(s.base),
		Stats:      s.stats,
		StatsReady: s.statsReady,
		LoadError:  s.loadErr,
	}
	if s.editingAdmin != nil {
		a := *s.editingAdmin
		st.EditingAdmin = &a
	}
	if s.editingUser != nil {
		u := *s.editingUser
		st.EditingUser = &u
	}
	if !s.statsReady {
		st.Stats = stats.SuperAdminStats{
			AverageActivity:     stats.Placeholder,
			TopDomain:           stats.Placeholder,
			OverallProductivity: stats.Placeholder,
			MonthYear:           s.now().Format("January 2006"),
		}
	}
	return st
}

func (s *SuperAdmin) loadDashboard(ctx context.Context) error {
	var (
		admins []client.UserRecord
		users  []client.UserRecord
		logs   []client.LogEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		admins, err = s.api.ListAdmins(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.api.ListUsers(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		logs, err = s.api.ListLogs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("super admin dashboard: %w", err)
	}

	s.commit(ctx, func() {
		s.admins = admins
		s.users = users
		s.logs = logs
		s.stats = stats.SuperAdmin(admins, users, s.now())
		s.statsReady = true
	})
	return nil
}

func (s *SuperAdmin) loadAdmins(ctx context.Context) error {
	admins, err := s.api.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	s.commit(ctx, func() { s.admins = admins })
	return nil
}

func (s *SuperAdmin) loadUsers(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx, staffRole)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	s.commit(ctx, func() { s.users = users })
	return nil
}

func (s *SuperAdmin) loadLogs(ctx context.Context) error {
	logs, err := s.api.ListLogs(ctx)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	s.commit(ctx, func() { s.logs = logs })
	return nil
}

// reportsLoader opens a report view. The view shows the submission form
// unless the path carries mode=list.
func (s *SuperAdmin) reportsLoader(kind client.ReportKind) func(context.Context) error {
	return func(ctx context.Context) error {
		_, path := s.Current()
		mode := ModeForm
		if view.Query(path).Get("mode") == string(ModeList) {
			mode = ModeList
		}
		s.commit(ctx, func() {
			s.reports.active = kind
			s.reports.mode = mode
		})
		return s.loadReports(ctx, &s.reports, kind)
	}
}

// EditReport applies fn to the open report draft.
func (s *SuperAdmin) EditReport(fn func(*reportform.Form)) {
	s.editDraft(&s.reports, fn)
}

// SetReportDate changes the draft date. Sundays are refused.
func (s *SuperAdmin) SetReportDate(value string) error {
	return s.setDraftDate(&s.reports, value)
}

// SubmitReport sends the open draft.
func (s *SuperAdmin) SubmitReport() error {
	return s.submitReport(&s.reports)
}

func (s *SuperAdmin) DeleteReport(kind client.ReportKind, id string) error {
	if err := s.deleteReport(&s.reports, kind, id); err != nil {
		return err
	}
	s.alert.Alert("Report deleted successfully!")
	return nil
}

// EditAdmin opens the admin form for a; nil opens an empty form.
func (s *SuperAdmin) EditAdmin(a *client.UserRecord) {
	s.mu.Lock()
	s.editingAdmin = a
	s.mu.Unlock()
	s.Navigate(s.path("/create-admin"))
}

// EditUser opens the user form for u; nil opens an empty form.
func (s *SuperAdmin) EditUser(u *client.UserRecord) {
	s.mu.Lock()
	s.editingUser = u
	s.mu.Unlock()
	s.Navigate(s.path("/create-user"))
}

func (s *SuperAdmin) SaveAdmin(in client.UserInput) error {
	s.mu.RLock()
	editing := s.editingAdmin
	s.mu.RUnlock()

	if in.Role == "" && editing == nil {
		in.Role = "admin"
	}
	err := s.saveAccount(accountForm{
		noun:     "admin",
		listPath: "/view-admins",
		create:   s.api.CreateAdmin,
		update:   s.api.UpdateAdmin,
	}, editing, in)
	if err == nil || client.IsUnreachable(err) {
		s.mu.Lock()
		s.editingAdmin = nil
		s.mu.Unlock()
	}
	return err
}

func (s *SuperAdmin) SaveUser(in client.UserInput) error {
	s.mu.RLock()
	editing := s.editingUser
	s.mu.RUnlock()

	err := s.saveAccount(accountForm{
		noun:     "user",
		listPath: "/view-users",
		create:   s.api.CreateUser,
		update:   s.api.UpdateUser,
	}, editing, in)
	if err == nil || client.IsUnreachable(err) {
		s.mu.Lock()
		s.editingUser = nil
		s.mu.Unlock()
	}
	return err
}

func (s *SuperAdmin) DeleteAdmin(id client.ID) error {
	return s.deleteAccount("admin", s.api.DeleteAdmin, id, func() {
		s.admins = withoutID(s.admins, id)
	})
}

func (s *SuperAdmin) DeleteUser(id client.ID) error {
	return s.deleteAccount("user", s.api.DeleteUser, id, func() {
		s.users = withoutID(s.users, id)
	})
}

// ClearLogs wipes the audit trail.
func (s *SuperAdmin) ClearLogs() error {
	viewCtx, reqCtx := s.actionContext()
	if err := s.api.ClearLogs(reqCtx); err != nil {
		s.alert.Alert(actionError(err, "Failed to clear logs"))
		return err
	}
	s.commit(viewCtx, func() { s.logs = nil })
	return nil
}
