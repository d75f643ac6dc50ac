package view

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/console/poll"
)

// Spec describes how a view gets its data.
type Spec struct {
	// Load runs once when the view becomes active. Nil for static views.
	Load func(ctx context.Context) error
	// Poll runs on every tick while the view stays active. Nil disables polling.
	Poll func(ctx context.Context) error
}

// Controller owns the poller of one dashboard and the lifetime of the
// active view. Every asynchronous result must go through Commit so that
// completions belonging to an abandoned view are dropped.
type Controller struct {
	router   *Router
	specs    map[ID]Spec
	poller   *poll.Scheduler
	interval time.Duration
	log      zerolog.Logger
	onError  func(ID, error)

	nav sync.Mutex

	mu      sync.Mutex
	current ID
	path    string
	token   string
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

type tokenKey struct{}

// Token returns the view token carried by ctx, if any.
func Token(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithInterval overrides poll.Interval. Intended for tests.
func WithInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.interval = d }
}

// WithLoadErrorHandler is invoked when a view's initial load fails.
func WithLoadErrorHandler(fn func(ID, error)) ControllerOption {
	return func(c *Controller) { c.onError = fn }
}

func NewController(router *Router, specs map[ID]Spec, log zerolog.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		router:   router,
		specs:    specs,
		poller:   poll.NewScheduler(log),
		interval: poll.Interval,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Navigate switches to the view for path. The previous view's poller and
// context are torn down before any request for the new view is issued.
// It blocks until the initial load has finished.
func (c *Controller) Navigate(path string) ID {
	c.nav.Lock()
	defer c.nav.Unlock()

	id := c.router.Resolve(path)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return id
	}
	if c.cancel != nil {
		c.cancel()
	}
	token := uuid.NewString()
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), tokenKey{}, token))
	c.ctx, c.cancel, c.token = ctx, cancel, token
	c.current, c.path = id, path
	c.mu.Unlock()

	c.poller.Stop()

	spec := c.specs[id]
	if spec.Load != nil {
		if err := spec.Load(ctx); err != nil && ctx.Err() == nil {
			c.log.Warn().Err(err).Str("view", string(id)).Msg("initial load failed")
			if c.onError != nil {
				c.onError(id, err)
			}
		}
	}

	if spec.Poll != nil {
		c.mu.Lock()
		// the poller was stopped above, so Start does not wait on a tick
		if !c.closed && ctx.Err() == nil {
			c.poller.Start(ctx, c.interval, spec.Poll)
		}
		c.mu.Unlock()
	}
	return id
}

// Current returns the active view and the path that selected it.
func (c *Controller) Current() (ID, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.path
}

// Polling reports whether a poller is armed for the active view.
func (c *Controller) Polling() bool {
	return c.poller.Active()
}

// Commit runs apply only if ctx still belongs to the active view. It reports
// whether apply ran.
func (c *Controller) Commit(ctx context.Context, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil || c.token == "" || Token(ctx) != c.token {
		return false
	}
	apply()
	return true
}

// Context returns the context of the active view, for user actions issued
// from it.
func (c *Controller) Context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Close tears down the poller and the active view. The controller ignores
// navigation afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	c.poller.Stop()
}
