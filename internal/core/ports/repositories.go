package ports

import (
	"context"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
)

// AccountPatch carries a partial account update. Nil fields are left as
// they are.
type AccountPatch struct {
	CustomID     *string
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
	Domain       *string
	Designation  *string
	Status       *string
}

// AccountRepository persists one account collection.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// FindByLogin matches identifier against username or email.
	FindByLogin(ctx context.Context, identifier string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// List returns accounts whose role contains roleFilter, case-insensitively.
	// An empty filter returns every account.
	List(ctx context.Context, roleFilter string) ([]*domain.Account, error)
	// CountByRole counts accounts with exactly role, case-insensitively. An
	// empty role counts the whole collection.
	CountByRole(ctx context.Context, role string) (int64, error)
	Update(ctx context.Context, id int64, patch AccountPatch) (*domain.Account, error)
	Delete(ctx context.Context, id int64) (*domain.Account, error)
}

// ReportRepository persists daily and weekly reports.
type ReportRepository interface {
	List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	Create(ctx context.Context, r *domain.Report) error
	Delete(ctx context.Context, kind domain.ReportKind, id string) error
}

// LogRepository persists the audit trail.
type LogRepository interface {
	// List returns entries newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]*domain.LogEntry, error)
	Create(ctx context.Context, e *domain.LogEntry) (*domain.LogEntry, error)
	// CloseLatest stamps the newest open session of username with logoutAt
	// and action. It reports whether an open session was found.
	CloseLatest(ctx context.Context, username string, logoutAt time.Time, action string) (bool, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

// TaskPatch carries a partial task update.
type TaskPatch struct {
	Title     *string
	Status    *string
	IsChecked *bool
	Priority  *string
	Deadline  *string
}

// TaskRepository persists mentor tasks.
type TaskRepository interface {
	List(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository stores desktop-agent samples.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}
