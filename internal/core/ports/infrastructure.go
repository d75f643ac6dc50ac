package ports

import (
	"context"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
)

// Locker runs fn while holding a distributed lock on key.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// DedupChecker remembers activity samples already accepted.
type DedupChecker interface {
	// FirstSeen records the sample and reports whether it was new.
	FirstSeen(ctx context.Context, username, action, timestamp string) (bool, error)
}

// NotificationStore is the super admin inbox.
type NotificationStore interface {
	Push(ctx context.Context, n domain.Notification) error
	// List returns up to limit notifications, newest first.
	List(ctx context.Context, limit int64) ([]domain.Notification, error)
}

// ScreenshotStore saves decoded screenshots and returns where they went.
type ScreenshotStore interface {
	Save(ctx context.Context, username string, image []byte, at time.Time) (string, error)
}

// ReportExporter renders reports as a spreadsheet.
type ReportExporter interface {
	Reports(kind domain.ReportKind, reports []*domain.Report) ([]byte, error)
}
