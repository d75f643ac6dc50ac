package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/scope"
	"github.com/nnsolutions/isms/internal/console/stats"
	"github.com/nnsolutions/isms/internal/console/view"
)

// Admin dashboard views.
const (
	AdminUsers         view.ID = "users"
	AdminCreateUser    view.ID = "create-user"
	AdminDailyReports  view.ID = "daily-reports"
	AdminWeeklyReports view.ID = "weekly-reports"
	AdminDomains       view.ID = "domains"
	AdminMonitoring    view.ID = "monitoring"
	AdminMentors       view.ID = "mentors"
	AdminLogs          view.ID = "logs"
)

// AdminPrefix is the path of the admin area.
const AdminPrefix = "/admin"

// AdminRouter resolves admin paths.
func AdminRouter() *view.Router {
	return view.NewRouter(
		view.Rule{Suffixes: []string{"/users"}, View: AdminUsers},
		view.Rule{Suffixes: []string{"/create-user"}, View: AdminCreateUser},
		view.Rule{Suffixes: []string{"/daily-reports"}, View: AdminDailyReports},
		view.Rule{Suffixes: []string{"/weekly-reports"}, View: AdminWeeklyReports},
		view.Rule{Suffixes: []string{"/domains"}, View: AdminDomains},
		view.Rule{Suffixes: []string{"/monitoring"}, View: AdminMonitoring},
		view.Rule{Suffixes: []string{"/mentors"}, View: AdminMentors},
		view.Rule{Suffixes: []string{"/logs"}, View: AdminLogs},
	)
}

// AdminState is a consistent copy of the admin dashboard.
type AdminState struct {
	View      view.ID
	Users     []client.UserRecord
	Mentors   []client.UserRecord
	Domains   []string
	Reports   ReportsState
	Logs      []client.LogEntry
	Leaders   []client.MentorPerformance
	Stats     stats.AdminStats
	Editing   *client.UserRecord
	LoadError string
}

type Admin struct {
	*base

	users   []client.UserRecord
	reports reportBoard
	logs    []client.LogEntry
	leaders []client.MentorPerformance
	stats   stats.AdminStats
	editing *client.UserRecord
}

func NewAdmin(d Deps) *Admin {
	a := &Admin{
		base:    newBase(d, AdminPrefix, "admin_dashboard"),
		reports: newReportBoard(),
		stats:   stats.EmptyAdmin(),
	}
	a.init(AdminRouter(), map[view.ID]view.Spec{
		view.Dashboard:     {Load: a.loadDashboard, Poll: a.loadDashboard},
		AdminUsers:         {Load: a.loadUsers, Poll: a.loadUsers},
		AdminCreateUser:    {},
		AdminDailyReports:  {Load: a.reportsLoader(client.Daily), Poll: a.reportsLoader(client.Daily)},
		AdminWeeklyReports: {Load: a.reportsLoader(client.Weekly), Poll: a.reportsLoader(client.Weekly)},
		AdminDomains:       {Load: a.loadUsersIfEmpty},
		AdminMonitoring:    {},
		AdminMentors:       {},
		AdminLogs:          {Load: a.loadLogs, Poll: a.loadLogs},
	}, d.Interval)
	return a
}

func (a *Admin) Snapshot() AdminState {
	id, _ := a.Current()

	a.mu.RLock()
	defer a.mu.RUnlock()

	s := AdminState{
		View:      id,
		Users:     clone(a.users),
		Mentors:   scope.Mentors(a.users),
		Domains:   scope.Domains(a.users),
		Reports:   a.reports.snapshot(a.base),
		Logs:      clone(a.logs),
		Leaders:   clone(a.leaders),
		Stats:     a.stats,
		LoadError: a.loadErr,
	}
	if a.editing != nil {
		e := *a.editing
		s.Editing = &e
	}
	return s
}

// loadDashboard fetches the overview in parallel. Each resource that
// arrived is applied even when a sibling failed.
func (a *Admin) loadDashboard(ctx context.Context) error {
	var (
		users   []client.UserRecord
		daily   []client.Report
		logs    []client.LogEntry
		leaders []client.MentorPerformance
	)
	var usersOK, dailyOK, logsOK, leadersOK bool

	var g errgroup.Group
	g.Go(func() (err error) {
		users, err = a.api.ListUsers(ctx, "")
		usersOK = err == nil
		return err
	})
	g.Go(func() (err error) {
		daily, err = a.api.ListReports(ctx, client.Daily)
		dailyOK = err == nil
		return err
	})
	g.Go(func() (err error) {
		logs, err = a.api.ListLogs(ctx)
		logsOK = err == nil
		return err
	})
	g.Go(func() (err error) {
		leaders, err = a.api.MentorPerformance(ctx)
		leadersOK = err == nil
		return err
	})
	err := g.Wait()

	a.commit(ctx, func() {
		if usersOK {
			a.users = users
			a.stats = stats.Admin(users)
		}
		if dailyOK {
			a.reports.set(client.Daily, daily)
		}
		if logsOK {
			a.logs = logs
		}
		if leadersOK {
			a.leaders = leaders
		}
	})
	if err != nil {
		return fmt.Errorf("admin dashboard: %w", err)
	}
	return nil
}

func (a *Admin) loadUsers(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx, "")
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	a.commit(ctx, func() {
		a.users = users
		a.stats = stats.Admin(users)
	})
	return nil
}

func (a *Admin) loadUsersIfEmpty(ctx context.Context) error {
	a.mu.RLock()
	have := len(a.users) > 0
	a.mu.RUnlock()
	if have {
		return nil
	}
	return a.loadUsers(ctx)
}

func (a *Admin) loadLogs(ctx context.Context) error {
	logs, err := a.api.ListLogs(ctx)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	a.commit(ctx, func() { a.logs = logs })
	return nil
}

func (a *Admin) reportsLoader(kind client.ReportKind) func(context.Context) error {
	return func(ctx context.Context) error {
		a.commit(ctx, func() { a.reports.active = kind })
		return a.loadReports(ctx, &a.reports, kind)
	}
}

// EditUser opens the user form prefilled with u.
func (a *Admin) EditUser(u client.UserRecord) {
	a.mu.Lock()
	a.editing = &u
	a.mu.Unlock()
	a.Navigate(a.path("/create-user"))
}

// NewUser opens an empty user form.
func (a *Admin) NewUser() {
	a.mu.Lock()
	a.editing = nil
	a.mu.Unlock()
	a.Navigate(a.path("/create-user"))
}

// SaveUser creates a user, or updates the one being edited, and returns to
// the user list.
func (a *Admin) SaveUser(in client.UserInput) error {
	a.mu.RLock()
	editing := a.editing
	a.mu.RUnlock()

	err := a.saveAccount(accountForm{
		noun:     "user",
		listPath: "/users",
		create:   a.api.CreateUser,
		update:   a.api.UpdateUser,
	}, editing, in)
	if err == nil || client.IsUnreachable(err) {
		a.mu.Lock()
		a.editing = nil
		a.mu.Unlock()
	}
	return err
}
