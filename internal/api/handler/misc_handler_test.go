package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// ---- tasks ----

type stubTaskService struct {
	createFn func(ctx context.Context, t domain.Task) (*domain.Task, error)
	updateFn func(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTaskService) List(context.Context) ([]*domain.Task, error) { return nil, nil }

func (s *stubTaskService) Create(ctx context.Context, t domain.Task) (*domain.Task, error) {
	return s.createFn(ctx, t)
}

func (s *stubTaskService) Update(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubTaskService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, task domain.Task) (*domain.Task, error) {
			if task.Title != "Review PR" || task.AssignedTo != "sam" {
				t.Fatalf("unexpected task: %+v", task)
			}
			task.ID = 1
			task.Status = domain.TaskPending
			return &task, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/tasks", `{"title":"Review PR","assignedTo":"sam","priority":"High"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["status"] != "Pending" || resp["isChecked"] != false {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newJSONContext(http.MethodPost, "/api/tasks", `{"assignedTo":"sam"}`)
	err := handler.Create(c)

	if httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestTaskHandler_Update_Partial(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
			if patch.IsChecked == nil || !*patch.IsChecked {
				t.Fatalf("expected isChecked=true")
			}
			if patch.Title != nil || patch.Status != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			return &domain.Task{ID: id, IsChecked: true}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodPut, "/api/tasks/4", `{"isChecked":true}`)
	withID(c, "4")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, id int64) error {
			if id == 404 {
				return domain.ErrTaskNotFound
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/api/tasks/3", "")
	withID(c, "3")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeMap(t, rec)
	if resp["message"] != "Task deleted" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c, _ = newJSONContext(http.MethodDelete, "/api/tasks/404", "")
	withID(c, "404")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---- logs ----

type stubLogService struct {
	created ports.LogInput
	cleared int64
}

func (s *stubLogService) List(context.Context) ([]*domain.LogEntry, error) {
	return []*domain.LogEntry{{ID: 2, Username: "sam", LoginTime: "2026-01-02T03:04:05.000Z"}}, nil
}

func (s *stubLogService) Create(_ context.Context, in ports.LogInput) (*domain.LogEntry, error) {
	s.created = in
	return &domain.LogEntry{ID: 3, Username: in.Username, Action: in.Action}, nil
}

func (s *stubLogService) Clear(context.Context) (int64, error) {
	return s.cleared, nil
}

func TestLogHandler_ListMirrorsTimestamp(t *testing.T) {
	handler := NewLogHandler(&stubLogService{})

	c, rec := newJSONContext(http.MethodGet, "/api/logs", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if want := `"timestamp":"2026-01-02T03:04:05.000Z"`; !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected %s in %s", want, rec.Body.String())
	}
}

func TestLogHandler_Create(t *testing.T) {
	stub := &stubLogService{}
	handler := NewLogHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/logs", `{"username":"sam","action":"Opened app"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created.Username != "sam" || stub.created.Action != "Opened app" {
		t.Fatalf("unexpected input: %+v", stub.created)
	}
}

func TestLogHandler_Clear(t *testing.T) {
	handler := NewLogHandler(&stubLogService{cleared: 12})

	c, rec := newJSONContext(http.MethodDelete, "/api/logs/clear", "")
	if err := handler.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeMap(t, rec)
	if resp["message"] != "All logs cleared successfully" || resp["deleted"] != float64(12) {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

// ---- activity ----

type recordingQueue struct {
	mu  sync.Mutex
	got []ports.ActivityInput
	err error
}

func (q *recordingQueue) Enqueue(_ context.Context, in ports.ActivityInput) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.got = append(q.got, in)
	return nil
}

func TestActivityHandler_Accepted(t *testing.T) {
	queue := &recordingQueue{}
	handler := NewActivityHandler(queue)

	c, rec := newJSONContext(http.MethodPost, "/activity",
		`{"username":"sam","action":"idle","idle_time":30,"app_url":"vscode","timestamp":"2026-01-01T00:00:00Z"}`)
	if err := handler.Record(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(queue.got) != 1 {
		t.Fatalf("expected one enqueued sample, got %d", len(queue.got))
	}
	in := queue.got[0]
	if in.Username != "sam" || in.AppURL != "vscode" || in.IdleTime == nil || *in.IdleTime != 30 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestActivityHandler_RequiresUsername(t *testing.T) {
	queue := &recordingQueue{}
	handler := NewActivityHandler(queue)

	c, _ := newJSONContext(http.MethodPost, "/activity", `{"action":"login"}`)
	err := handler.Record(c)

	if httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if len(queue.got) != 0 {
		t.Fatalf("nothing should be enqueued")
	}
}

func TestActivityHandler_QueueFull(t *testing.T) {
	handler := NewActivityHandler(&recordingQueue{err: context.DeadlineExceeded})

	c, _ := newJSONContext(http.MethodPost, "/activity", `{"username":"sam","action":"login"}`)
	err := handler.Record(c)

	if httpCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
}

// ---- notifications ----

type stubNotificationService struct {
	taskID    string
	message   string
	listLimit int64
}

func (s *stubNotificationService) Notify(_ context.Context, taskID, message string) (*domain.Notification, error) {
	s.taskID, s.message = taskID, message
	return &domain.Notification{ID: "n1", TaskID: taskID, Message: message}, nil
}

func (s *stubNotificationService) List(_ context.Context, limit int64) ([]domain.Notification, error) {
	s.listLimit = limit
	return []domain.Notification{}, nil
}

func TestNotificationHandler_NotifyAcceptsNumericTaskID(t *testing.T) {
	stub := &stubNotificationService{}
	handler := NewNotificationHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/notifications/super-admin", `{"taskId":17,"message":"overdue"}`)
	if err := handler.Notify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.taskID != "17" || stub.message != "overdue" {
		t.Fatalf("unexpected notify args: %q %q", stub.taskID, stub.message)
	}
}

func TestNotificationHandler_NotifyStringTaskID(t *testing.T) {
	stub := &stubNotificationService{}
	handler := NewNotificationHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/notifications/super-admin", `{"taskId":"17","message":"overdue"}`)
	if err := handler.Notify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if stub.taskID != "17" {
		t.Fatalf("unexpected task id %q", stub.taskID)
	}
}

func TestNotificationHandler_ListLimit(t *testing.T) {
	stub := &stubNotificationService{}
	handler := NewNotificationHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/api/notifications/super-admin?limit=10", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.listLimit != 10 {
		t.Fatalf("expected limit 10, got %d", stub.listLimit)
	}

	c, _ = newJSONContext(http.MethodGet, "/api/notifications/super-admin?limit=abc", "")
	if err := handler.List(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// ---- health ----

func TestHealthHandler_Root(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/", "")
	if err := NewHealthHandler().Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeMap(t, rec)
	if resp["status"] != "online" || resp["version"] != "1.0.0" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	handler := NewReadinessHandler(map[string]DependencyCheck{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})

	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
	if err := handler.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decodeMap(t, rec)
	deps := resp["dependencies"].(map[string]any)
	if deps["mongodb"].(map[string]any)["status"] != "ok" || deps["redis"].(map[string]any)["status"] != "unhealthy" {
		t.Fatalf("unexpected dependencies: %+v", deps)
	}
}
