package service

import (
	"context"
	"time"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type logService struct {
	repo ports.LogRepository
	now  func() time.Time
}

// NewLogService returns a LogService implementation.
func NewLogService(repo ports.LogRepository) ports.LogService {
	return &logService{repo: repo, now: time.Now}
}

func (s *logService) List(ctx context.Context) ([]*domain.LogEntry, error) {
	return s.repo.List(ctx, 0)
}

func (s *logService) Create(ctx context.Context, in ports.LogInput) (*domain.LogEntry, error) {
	return s.repo.Create(ctx, &domain.LogEntry{
		Username:    in.Username,
		LoginTime:   domain.Timestamp(s.now()),
		Email:       in.Email,
		Domain:      in.Domain,
		Role:        orDefault(in.Role, domain.RoleUser),
		Designation: in.Designation,
		Action:      orDefault(in.Action, "No action specified"),
	})
}

func (s *logService) Clear(ctx context.Context) (int64, error) {
	return s.repo.Clear(ctx)
}
