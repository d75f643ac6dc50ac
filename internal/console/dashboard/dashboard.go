// Package dashboard implements the role areas of the console. Each dashboard
// owns one view.Controller, so at most one poller runs per dashboard, and
// every fetched result is committed through it.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/session"
	"github.com/nnsolutions/isms/internal/console/view"
)

// User-facing messages shared by the dashboards.
const (
	MsgUnreachable   = "Failed to connect to the server. Please try again later."
	MsgReportFailed  = "Failed to create report"
	MsgReportCreated = "Report created successfully!"
	MsgTaskFailed    = "Failed to save task to backend"
	MsgTaskChecked   = "Task checked by Mentor"
)

// Alerter shows a blocking notification for an explicit user action.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// Dashboard is what the app shell mounts for a role area.
type Dashboard interface {
	Navigate(path string) view.ID
	Current() (view.ID, string)
	Close()
}

// Deps are the collaborators every dashboard is built from. Session is the
// signed-in user, loaded by the caller.
type Deps struct {
	API      *client.Client
	Session  *session.Session
	Alert    Alerter
	Log      zerolog.Logger
	Now      func() time.Time
	Interval time.Duration
}

type base struct {
	api    *client.Client
	sess   session.Session
	alert  Alerter
	log    zerolog.Logger
	now    func() time.Time
	prefix string
	ctl    *view.Controller

	mu      sync.RWMutex
	loadErr string
}

func newBase(d Deps, prefix, component string) *base {
	b := &base{
		api:    d.API,
		alert:  d.Alert,
		log:    d.Log.With().Str("component", component).Logger(),
		now:    d.Now,
		prefix: prefix,
	}
	if d.Session != nil {
		b.sess = *d.Session
	}
	if b.alert == nil {
		b.alert = AlertFunc(func(string) {})
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

func (b *base) init(router *view.Router, specs map[view.ID]view.Spec, interval time.Duration) {
	opts := []view.ControllerOption{view.WithLoadErrorHandler(b.onLoadError)}
	if interval > 0 {
		opts = append(opts, view.WithInterval(interval))
	}
	b.ctl = view.NewController(router, specs, b.log, opts...)
}

func (b *base) Navigate(path string) view.ID {
	b.mu.Lock()
	b.loadErr = ""
	b.mu.Unlock()
	return b.ctl.Navigate(path)
}

func (b *base) Current() (view.ID, string) { return b.ctl.Current() }

// Polling reports whether the active view has a poller armed.
func (b *base) Polling() bool { return b.ctl.Polling() }

func (b *base) Close() { b.ctl.Close() }

// Session returns the user this dashboard was mounted for.
func (b *base) Session() session.Session { return b.sess }

// LoadError is the failure of the active view's initial load, if any.
func (b *base) LoadError() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

func (b *base) onLoadError(id view.ID, err error) {
	b.mu.Lock()
	b.loadErr = "Failed to load " + string(id)
	b.mu.Unlock()
}

// commit applies fn to dashboard state if ctx still belongs to the active view.
func (b *base) commit(ctx context.Context, fn func()) bool {
	return b.ctl.Commit(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		fn()
	})
}

// actionContext pairs the active view's context, used to guard commits,
// with a context for the request itself. User actions are not abandoned when
// the view changes; only their effect on view state is.
func (b *base) actionContext() (viewCtx, reqCtx context.Context) {
	return b.ctl.Context(), context.Background()
}

func (b *base) path(suffix string) string {
	return b.prefix + suffix
}

// actionError formats a failed create/update/delete for an alert.
func actionError(err error, fallback string) string {
	if client.IsUnreachable(err) {
		return MsgUnreachable
	}
	return "Error: " + client.Message(err, fallback)
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
