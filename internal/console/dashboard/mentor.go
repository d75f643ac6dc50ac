package dashboard

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/scope"
	"github.com/nnsolutions/isms/internal/console/stats"
	"github.com/nnsolutions/isms/internal/console/view"
)

// Mentor dashboard views.
const (
	MentorUsers         view.ID = "users"
	MentorDailyReports  view.ID = "daily-reports"
	MentorWeeklyReports view.ID = "weekly-reports"
	MentorCredentials   view.ID = "credentials"
	MentorAssignTask    view.ID = "assign-task"
	MentorTasks         view.ID = "task-assigning"
)

// MentorPrefix is the path of the mentor area.
const MentorPrefix = "/mentor"

// placeholderDomain is what mentor accounts carry before a real domain is set.
const placeholderDomain = "Domain Mentor"

func MentorRouter() *view.Router {
	return view.NewRouter(
		view.Rule{Suffixes: []string{"/users"}, View: MentorUsers},
		view.Rule{Suffixes: []string{"/daily-reports"}, View: MentorDailyReports},
		view.Rule{Suffixes: []string{"/weekly-reports"}, View: MentorWeeklyReports},
		view.Rule{Suffixes: []string{"/credentials"}, View: MentorCredentials},
		view.Rule{Suffixes: []string{"/assign-task"}, View: MentorAssignTask},
		view.Rule{Suffixes: []string{"/assigned-tasks", "/task-assigning"}, View: MentorTasks},
	)
}

// MentorState is a consistent copy of the mentor dashboard.
type MentorState struct {
	View        view.ID
	Domain      string
	Users       []client.UserRecord
	DomainUsers []client.UserRecord
	Reports     ReportsState
	Tasks       []client.Task
	Stats       stats.MentorStats
	StatsReady  bool
	Error       string
	LoadError   string
}

type Mentor struct {
	*base

	users      []client.UserRecord
	reports    reportBoard
	tasks      []client.Task
	stats      stats.MentorStats
	statsReady bool
	err        string
}

func NewMentor(d Deps) *Mentor {
	m := &Mentor{
		base:    newBase(d, MentorPrefix, "mentor_dashboard"),
		reports: newReportBoard(),
	}
	m.init(MentorRouter(), map[view.ID]view.Spec{
		view.Dashboard:      {Load: m.loadDashboard, Poll: m.loadDashboard},
		MentorUsers:         {Load: m.loadUsers, Poll: m.loadUsers},
		MentorDailyReports:  {Load: m.reportsLoader(client.Daily), Poll: m.reportsLoader(client.Daily)},
		MentorWeeklyReports: {Load: m.reportsLoader(client.Weekly), Poll: m.reportsLoader(client.Weekly)},
		MentorCredentials:   {},
		MentorAssignTask:    {Load: m.loadUsersIfEmpty},
		MentorTasks:         {Load: m.loadTaskBoard},
	}, d.Interval)
	return m
}

// Domain is the mentor's domain: the department recorded for the mentor in
// the latest user list, else the one stored in the session.
func (m *Mentor) Domain() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.domainLocked()
}

func (m *Mentor) domainLocked() string {
	for _, u := range m.users {
		if u.Username == m.sess.Username && u.Department != "" {
			return u.Department
		}
	}
	return m.sess.Domain
}

func (m *Mentor) Snapshot() MentorState {
	id, _ := m.Current()

	m.mu.RLock()
	defer m.mu.RUnlock()

	domain := m.domainLocked()
	return MentorState{
		View:        id,
		Domain:      domain,
		Users:       clone(m.users),
		DomainUsers: scope.InDomain(m.users, domain),
		Reports:     m.reports.snapshot(m.base),
		Tasks:       clone(m.tasks),
		Stats:       m.stats,
		StatsReady:  m.statsReady,
		Error:       m.err,
		LoadError:   m.loadErr,
	}
}

// setUsersLocked stores users and refreshes the domain card.
func (m *Mentor) setUsersLocked(users []client.UserRecord) {
	m.users = users
	domain := m.domainLocked()
	if domain != "" && domain != placeholderDomain {
		m.stats = stats.MentorDomain(users, domain)
		m.statsReady = true
	}
}

func (m *Mentor) loadDashboard(ctx context.Context) error {
	var (
		users []client.UserRecord
		daily []client.Report
	)
	var usersOK, dailyOK bool

	var g errgroup.Group
	g.Go(func() (err error) {
		users, err = m.api.ListUsers(ctx, "")
		usersOK = err == nil
		return err
	})
	g.Go(func() (err error) {
		daily, err = m.api.ListReports(ctx, client.Daily)
		dailyOK = err == nil
		return err
	})
	err := g.Wait()

	m.commit(ctx, func() {
		if usersOK {
			m.setUsersLocked(users)
		}
		if dailyOK {
			m.reports.set(client.Daily, daily)
		}
	})
	if err != nil {
		return fmt.Errorf("mentor dashboard: %w", err)
	}
	return nil
}

func (m *Mentor) loadUsers(ctx context.Context) error {
	users, err := m.api.ListUsers(ctx, "")
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	m.commit(ctx, func() { m.setUsersLocked(users) })
	return nil
}

func (m *Mentor) loadUsersIfEmpty(ctx context.Context) error {
	m.mu.RLock()
	have := len(m.users) > 0
	m.mu.RUnlock()
	if have {
		return nil
	}
	return m.loadUsers(ctx)
}

func (m *Mentor) loadTaskBoard(ctx context.Context) error {
	if err := m.loadUsersIfEmpty(ctx); err != nil {
		m.log.Warn().Err(err).Msg("users for task board unavailable")
	}
	tasks, err := m.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	m.commit(ctx, func() { m.tasks = tasks })
	return nil
}

func (m *Mentor) reportsLoader(kind client.ReportKind) func(context.Context) error {
	return func(ctx context.Context) error {
		m.commit(ctx, func() { m.reports.active = kind })
		return m.loadReports(ctx, &m.reports, kind)
	}
}

// CreateTask saves a new task, puts the stored copy at the top of the task
// list and opens the task board.
func (m *Mentor) CreateTask(t client.Task) error {
	viewCtx, reqCtx := m.actionContext()

	t.Status = "Pending"
	t.CreatedAt = m.now().UTC().Format("2006-01-02T15:04:05.000Z")
	if strings.TrimSpace(t.Domain) == "" {
		t.Domain = m.Domain()
	}

	saved, err := m.api.CreateTask(reqCtx, t)
	if err != nil {
		detail := client.Message(err, MsgTaskFailed)
		if client.IsUnreachable(err) {
			detail = MsgUnreachable
		}
		msg := "Error creating task: " + detail
		m.commit(viewCtx, func() { m.err = msg })
		m.alert.Alert(msg)
		return err
	}

	m.mu.Lock()
	m.tasks = append([]client.Task{*saved}, m.tasks...)
	m.err = ""
	m.mu.Unlock()

	m.Navigate(m.path("/assigned-tasks"))
	return nil
}

// CheckTask marks a task as checked locally and tells the super admin. The
// notification is best effort: a failure is logged and never retried.
func (m *Mentor) CheckTask(id client.ID) {
	viewCtx, reqCtx := m.actionContext()

	m.commit(viewCtx, func() {
		tasks := clone(m.tasks)
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].IsChecked = true
			}
		}
		m.tasks = tasks
	})

	checked := true
	if _, err := m.api.UpdateTask(reqCtx, id, client.TaskUpdate{IsChecked: &checked}); err != nil {
		m.log.Warn().Err(err).Str("task_id", id.String()).Msg("failed to persist task check")
	}
	if err := m.api.NotifySuperAdmin(reqCtx, client.Notification{TaskID: id, Message: MsgTaskChecked}); err != nil {
		m.log.Warn().Err(err).Str("task_id", id.String()).Msg("failed to notify super admin")
	}
}
