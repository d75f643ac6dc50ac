package service

import (
	"context"
	"fmt"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type mentorService struct {
	admins ports.AccountRepository
	logs   ports.LogRepository
}

// NewMentorService returns a MentorService implementation.
func NewMentorService(admins ports.AccountRepository, logs ports.LogRepository) ports.MentorService {
	return &mentorService{admins: admins, logs: logs}
}

// Performance returns one row per mentor account. Activity is the number of
// audit entries recorded under the mentor's username.
func (s *mentorService) Performance(ctx context.Context) ([]domain.MentorPerformance, error) {
	accounts, err := s.admins.List(ctx, domain.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("mentor performance: %w", err)
	}

	out := make([]domain.MentorPerformance, 0, len(accounts))
	for _, a := range accounts {
		if !domain.SameRole(a.Role, domain.RoleMentor) {
			continue
		}
		n, err := s.logs.CountByUsername(ctx, a.Username)
		if err != nil {
			return nil, fmt.Errorf("mentor performance: %w", err)
		}
		out = append(out, domain.MentorPerformance{
			ID:         a.ID,
			Name:       a.Username,
			Activity:   n,
			AvatarSeed: a.Username,
		})
	}
	return out, nil
}
