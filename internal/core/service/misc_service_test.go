package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Logs
// ---------------------------------------------------------------------------

func TestLogService_CreateDefaults(t *testing.T) {
	repo := &stubLogRepo{}
	svc := NewLogService(repo).(*logService)
	svc.now = fixedClock(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC))

	got, err := svc.Create(context.Background(), ports.LogInput{Username: "ivy"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got.Role != domain.RoleUser || got.Action != "No action specified" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.LoginTime != "2026-03-04T09:30:00.000Z" {
		t.Fatalf("unexpected time: %s", got.LoginTime)
	}
}

func TestLogService_Clear(t *testing.T) {
	repo := &stubLogRepo{entries: []*domain.LogEntry{{ID: 1}, {ID: 2}}}
	svc := NewLogService(repo)

	n, err := svc.Clear(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("expected 2 cleared, got %d (%v)", n, err)
	}
	if got, _ := svc.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty trail, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	created []*domain.Task
}

func (r *stubTaskRepo) List(context.Context) ([]*domain.Task, error) { return r.created, nil }

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	t.ID = int64(len(r.created) + 1)
	r.created = append(r.created, t)
	return t, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id int64, _ ports.TaskPatch) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Delete(context.Context, int64) error { return domain.ErrTaskNotFound }

func TestTaskService_CreateDefaults(t *testing.T) {
	repo := &stubTaskRepo{}
	svc := NewTaskService(repo).(*taskService)
	svc.now = fixedClock(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC))

	got, err := svc.Create(context.Background(), domain.Task{Title: "  Review PR  "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got.Title != "Review PR" || got.Status != domain.TaskPending || got.CreatedAt != "2026-03-04T09:30:00.000Z" {
		t.Fatalf("unexpected task: %+v", got)
	}

	kept, _ := svc.Create(context.Background(), domain.Task{Title: "x", Status: "Done", CreatedAt: "earlier"})
	if kept.Status != "Done" || kept.CreatedAt != "earlier" {
		t.Fatalf("client values overwritten: %+v", kept)
	}
}

func TestTaskService_NotFound(t *testing.T) {
	svc := NewTaskService(&stubTaskRepo{})

	if _, err := svc.Update(context.Background(), 1, ports.TaskPatch{}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Mentors
// ---------------------------------------------------------------------------

func TestMentorService_Performance(t *testing.T) {
	admins := newStubAccountRepo(domain.ErrAdminNotFound)
	admins.seed(&domain.Account{Username: "mona", Role: domain.RoleMentor})
	admins.seed(&domain.Account{Username: "boss", Role: domain.RoleAdmin})
	admins.seed(&domain.Account{Username: "nico", Role: "Mentor"})
	logs := &stubLogRepo{counts: map[string]int64{"mona": 4}}

	got, err := NewMentorService(admins, logs).Performance(context.Background())
	if err != nil {
		t.Fatalf("performance failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 mentors, got %d", len(got))
	}
	if got[0].Name != "mona" || got[0].Activity != 4 || got[0].AvatarSeed != "mona" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Name != "nico" || got[1].Activity != 0 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestMentorService_NoMentors(t *testing.T) {
	got, err := NewMentorService(newStubAccountRepo(domain.ErrAdminNotFound), &stubLogRepo{}).Performance(context.Background())
	if err != nil {
		t.Fatalf("performance failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func TestNotificationService(t *testing.T) {
	inbox := &stubInbox{}
	svc := NewNotificationService(inbox)

	n, err := svc.Notify(context.Background(), " 12 ", " Task completed ")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if n.ID == "" || n.TaskID != "12" || n.Message != "Task completed" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if len(inbox.pushed) != 1 || inbox.pushed[0].ID != n.ID {
		t.Fatalf("expected notification pushed")
	}

	if _, err := svc.List(context.Background(), 0); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if inbox.limit != defaultInboxLimit {
		t.Fatalf("expected default limit, got %d", inbox.limit)
	}
}
