// Package poll runs a view's background re-fetch on a fixed interval.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Interval is the refresh period shared by every polled view.
const Interval = 3 * time.Second

// Task is one poll tick. Its context is cancelled when the run is stopped.
type Task func(ctx context.Context) error

// Scheduler keeps at most one repeating task alive.
//
// Ticks of a run execute one after another on a single goroutine, so a slow
// tick delays the next one instead of racing it.
type Scheduler struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	log    zerolog.Logger
}

func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Start stops any active run and then arms task every interval. The first
// tick fires one interval after Start; callers perform the initial load
// themselves.
func (s *Scheduler) Start(parent context.Context, interval time.Duration, task Task) {
	if interval <= 0 {
		interval = Interval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, done, interval, task)
}

// Stop cancels the active run and waits for its goroutine to exit. Calling
// Stop with nothing running is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Active reports whether a run is armed.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}, interval time.Duration, task Task) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := task(ctx); err != nil && ctx.Err() == nil {
				// stale data stays on screen; the next tick tries again
				s.log.Warn().Err(err).Msg("poll tick failed")
			}
		}
	}
}
