package ports

import (
	"context"

	"github.com/nnsolutions/isms/internal/core/domain"
)

// LoginResult is a successful login.
type LoginResult struct {
	Token   string
	Account *domain.Account
}

type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Logout(ctx context.Context, username string) error
}

// AccountInput is the create/update payload for accounts. Nil fields were
// absent from the request.
type AccountInput struct {
	CustomID    *string
	Username    *string
	FullName    *string
	Email       *string
	Password    *string
	Role        *string
	Domain      *string
	Designation *string
	Status      *string
}

type AccountService interface {
	List(ctx context.Context, roleFilter string) ([]*domain.Account, error)
	Create(ctx context.Context, in AccountInput) (*domain.Account, error)
	Update(ctx context.Context, id int64, in AccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id int64, actor domain.Actor) error
}

type ReportService interface {
	List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	Create(ctx context.Context, r domain.Report, actor domain.Actor) (*domain.Report, error)
	Delete(ctx context.Context, kind domain.ReportKind, id string, actor domain.Actor) error
	Export(ctx context.Context, kind domain.ReportKind) ([]byte, error)
}

// LogInput is a manually recorded audit entry.
type LogInput struct {
	Username    string
	Email       string
	Domain      string
	Role        string
	Designation string
	Action      string
}

type LogService interface {
	List(ctx context.Context) ([]*domain.LogEntry, error)
	Create(ctx context.Context, in LogInput) (*domain.LogEntry, error)
	Clear(ctx context.Context) (int64, error)
}

type TaskService interface {
	List(ctx context.Context) ([]*domain.Task, error)
	Create(ctx context.Context, t domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityInput is one desktop-agent sample as received.
type ActivityInput struct {
	Username   string
	Email      string
	Action     string
	AppURL     string
	IdleTime   *int
	Timestamp  string
	Screenshot string
}

type ActivityService interface {
	Record(ctx context.Context, in ActivityInput) error
}

type MentorService interface {
	Performance(ctx context.Context) ([]domain.MentorPerformance, error)
}

type NotificationService interface {
	Notify(ctx context.Context, taskID, message string) (*domain.Notification, error)
	List(ctx context.Context, limit int64) ([]domain.Notification, error)
}
