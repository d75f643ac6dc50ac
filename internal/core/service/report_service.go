package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type reportService struct {
	repo     ports.ReportRepository
	logs     ports.LogRepository
	exporter ports.ReportExporter
	now      func() time.Time
	log      zerolog.Logger
}

// NewReportService returns a ReportService implementation.
func NewReportService(repo ports.ReportRepository, logs ports.LogRepository, exporter ports.ReportExporter, log zerolog.Logger) ports.ReportService {
	return &reportService{
		repo:     repo,
		logs:     logs,
		exporter: exporter,
		now:      time.Now,
		log:      log,
	}
}

func (s *reportService) List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	return s.repo.List(ctx, kind)
}

// Create fills the server-side defaults (ID, title, status) and records
// the submission in the audit trail.
func (s *reportService) Create(ctx context.Context, r domain.Report, actor domain.Actor) (*domain.Report, error) {
	now := s.now()
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		r.ID = fmt.Sprintf("%s%d", r.Kind.IDPrefix(), now.UnixMilli())
	}
	if r.Title == "" {
		r.Title = r.Kind.Label() + " Report"
	}
	if r.Status == "" {
		r.Status = domain.ReportPending
	}
	r.CreatedAt = now.UTC()

	if err := s.repo.Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("create %s report: %w", r.Kind, err)
	}

	s.audit(ctx, actor, orDefault(r.Email, "system"), fmt.Sprintf("Submitted %s Report: %s", r.Kind.Label(), r.ID))
	return &r, nil
}

func (s *reportService) Delete(ctx context.Context, kind domain.ReportKind, id string, actor domain.Actor) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.audit(ctx, actor, "system", fmt.Sprintf("Deleted %s Report: %s", kind.Label(), id))
	return nil
}

func (s *reportService) Export(ctx context.Context, kind domain.ReportKind) ([]byte, error) {
	reports, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("export %s reports: %w", kind, err)
	}
	return s.exporter.Reports(kind, reports)
}

// audit attributes the entry to actor when the request was authenticated
// and to fallbackEmail in the "Reports" domain otherwise.
func (s *reportService) audit(ctx context.Context, actor domain.Actor, fallbackEmail, action string) {
	entry := &domain.LogEntry{
		Username:  actor.Username,
		LoginTime: domain.Timestamp(s.now()),
		Email:     fallbackEmail,
		Domain:    "Reports",
		Role:      domain.RoleUser,
		Action:    action,
	}
	if actor.Username != "" {
		entry.Email = actor.Email
		entry.Domain = actor.Domain
		entry.Role = actor.Role
	}
	if _, err := s.logs.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record report audit entry")
	}
}
