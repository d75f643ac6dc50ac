package service

import (
	"context"
	"strings"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type taskService struct {
	repo ports.TaskRepository
	now  func() time.Time
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(repo ports.TaskRepository) ports.TaskService {
	return &taskService{repo: repo, now: time.Now}
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.List(ctx)
}

func (s *taskService) Create(ctx context.Context, t domain.Task) (*domain.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.CreatedAt == "" {
		t.CreatedAt = domain.Timestamp(s.now())
	}
	return s.repo.Create(ctx, &t)
}

func (s *taskService) Update(ctx context.Context, id int64, patch ports.TaskPatch) (*domain.Task, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
