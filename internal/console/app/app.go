// Package app is the console shell. It owns the session, mounts the
// dashboard for the current area and handles login and logout.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/dashboard"
	"github.com/nnsolutions/isms/internal/console/session"
)

// Login messages.
const (
	MsgLoginFailed    = "Login failed"
	MsgServerNotFound = "Server not reachable. Please try again."
)

// RootPath is the login screen.
const RootPath = "/"

// Area is a top-level section of the console.
type Area string

const (
	AreaLogin      Area = "login"
	AreaAdmin      Area = "admin"
	AreaSuperAdmin Area = "superadmin"
	AreaMentor     Area = "mentor"
	AreaUser       Area = "user"
)

// appLabels name each area in the activity trail.
var appLabels = map[Area]string{
	AreaAdmin:      "Admin Dashboard",
	AreaSuperAdmin: "Super Admin Dashboard",
	AreaMentor:     "Mentor Dashboard",
	AreaUser:       "User Dashboard",
}

// Navigator changes the visible route.
type Navigator interface {
	Navigate(path string)
}

// HomePath is where a role lands after login. The role is compared
// case-insensitively; ok is false for roles without a home.
func HomePath(role string) (path string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case session.RoleSuperAdmin:
		return dashboard.SuperAdminPrefix, true
	case session.RoleAdmin:
		return dashboard.AdminPrefix, true
	case session.RoleMentor:
		return dashboard.MentorPrefix, true
	case session.RoleUser:
		return dashboard.UserPath, true
	}
	return "", false
}

// AreaOf maps a path to its area. Unknown paths report ok=false.
func AreaOf(path string) (Area, bool) {
	p := path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == RootPath {
		return AreaLogin, true
	}
	switch {
	case within(p, dashboard.SuperAdminPrefix):
		return AreaSuperAdmin, true
	case within(p, dashboard.AdminPrefix):
		return AreaAdmin, true
	case within(p, dashboard.MentorPrefix):
		return AreaMentor, true
	case p == dashboard.UserPath || p == dashboard.UserPath+"/":
		return AreaUser, true
	}
	return "", false
}

func within(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// LoginError is a failed login with the message to show.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// Config wires a Shell.
type Config struct {
	API      *client.Client
	Store    session.Store
	Alert    dashboard.Alerter
	Log      zerolog.Logger
	Now      func() time.Time
	Interval time.Duration
}

// Shell routes between the login screen and the role dashboards. Only one
// dashboard is mounted at a time; it is closed before the next one starts.
type Shell struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	path   string
	area   Area
	active dashboard.Dashboard
}

func New(cfg Config) *Shell {
	return &Shell{
		cfg:  cfg,
		log:  cfg.Log.With().Str("component", "shell").Logger(),
		path: RootPath,
		area: AreaLogin,
	}
}

// Navigate shows path. Unknown paths redirect to the login screen, as do
// dashboard paths when nobody is signed in.
func (s *Shell) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateLocked(path)
}

func (s *Shell) navigateLocked(path string) {
	area, ok := AreaOf(path)
	if !ok {
		s.log.Debug().Str("path", path).Msg("unknown route, redirecting")
		path, area = RootPath, AreaLogin
	}

	if area == s.area && s.active != nil {
		s.path = path
		s.active.Navigate(path)
		return
	}

	s.unmountLocked()
	if area == AreaLogin {
		s.path, s.area = RootPath, AreaLogin
		return
	}

	sess, err := s.cfg.Store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load session")
	}
	if sess == nil {
		s.path, s.area = RootPath, AreaLogin
		return
	}

	s.active = s.mount(area, sess)
	s.path, s.area = path, area
	s.active.Navigate(path)
}

func (s *Shell) mount(area Area, sess *session.Session) dashboard.Dashboard {
	d := dashboard.Deps{
		API:      s.cfg.API.WithSession(sess.Token),
		Session:  sess,
		Alert:    s.cfg.Alert,
		Log:      s.cfg.Log,
		Now:      s.cfg.Now,
		Interval: s.cfg.Interval,
	}
	switch area {
	case AreaSuperAdmin:
		return dashboard.NewSuperAdmin(d)
	case AreaAdmin:
		return dashboard.NewAdmin(d)
	case AreaMentor:
		return dashboard.NewMentor(d)
	default:
		return dashboard.NewUser(d)
	}
}

func (s *Shell) unmountLocked() {
	if s.active != nil {
		s.active.Close()
		s.active = nil
	}
}

// Path is the current route, including moves made by the dashboard itself.
func (s *Shell) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		if _, p := s.active.Current(); p != "" {
			return p
		}
	}
	return s.path
}

// Area is the current area.
func (s *Shell) Area() Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.area
}

// Dashboard is the mounted dashboard, nil on the login screen.
func (s *Shell) Dashboard() dashboard.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Session is the stored session, nil when signed out.
func (s *Shell) Session() *session.Session {
	sess, err := s.cfg.Store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load session")
		return nil
	}
	return sess
}

// Login authenticates, stores the session and opens the home of the
// returned role. A role without a home stays on the login screen.
func (s *Shell) Login(ctx context.Context, creds client.Credentials) (*session.Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)

	res, err := s.cfg.API.Login(ctx, creds)
	if err != nil {
		msg := client.Message(err, MsgLoginFailed)
		if client.IsUnreachable(err) {
			msg = MsgServerNotFound
		}
		return nil, &LoginError{Message: msg, Err: err}
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MsgLoginFailed
		}
		return nil, &LoginError{Message: msg}
	}

	// The mounted dashboard holds the previous session and token.
	s.mu.Lock()
	s.unmountLocked()
	s.path, s.area = RootPath, AreaLogin
	s.mu.Unlock()

	sess := &session.Session{
		Username:    res.User.Username,
		Role:        res.User.Role,
		Domain:      res.User.Department,
		Designation: res.User.Designation,
		CustomID:    res.User.CustomID,
		Token:       res.Token,
	}
	if err := s.cfg.Store.Save(sess); err != nil {
		return nil, &LoginError{Message: MsgLoginFailed, Err: err}
	}
	s.log.Info().Str("username", sess.Username).Str("role", sess.NormalizedRole()).Msg("logged in")

	if home, ok := HomePath(sess.Role); ok {
		s.Navigate(home)
	} else {
		s.log.Warn().Str("role", sess.Role).Msg("no home for role")
	}
	return sess, nil
}

// Logout records the logout with the backend, clears the session and
// returns to the login screen. Backend failures never keep the user signed
// in.
func (s *Shell) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.cfg.Store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load session")
	}
	if sess != nil && sess.Username != "" {
		api := s.cfg.API.WithSession(sess.Token)
		label := appLabels[s.area]
		if label == "" {
			label = appLabels[AreaUser]
		}
		if err := api.RecordActivity(ctx, client.Activity{
			Username: sess.Username,
			Action:   "logout",
			AppURL:   label,
		}); err != nil {
			s.log.Warn().Err(err).Msg("failed to record logout activity")
		}
		if err := api.Logout(ctx, sess.Username); err != nil {
			s.log.Warn().Err(err).Msg("logout request failed")
		}
	}

	clearErr := s.cfg.Store.Clear()
	s.navigateLocked(RootPath)
	if clearErr != nil {
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}
