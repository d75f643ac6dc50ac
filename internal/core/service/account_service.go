package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const customIDLockTTL = 10 * time.Second

type accountService struct {
	kind   domain.AccountKind
	repo   ports.AccountRepository
	logs   ports.LogRepository
	locker ports.Locker
	now    func() time.Time
	log    zerolog.Logger
}

// NewAccountService returns the AccountService for one account collection.
// Admin services manage superadmins, admins and mentors; user services
// manage staff.
func NewAccountService(
	kind domain.AccountKind,
	repo ports.AccountRepository,
	logs ports.LogRepository,
	locker ports.Locker,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		kind:   kind,
		repo:   repo,
		logs:   logs,
		locker: locker,
		now:    time.Now,
		log:    log.With().Str("accounts", string(kind)).Logger(),
	}
}

func (s *accountService) List(ctx context.Context, roleFilter string) ([]*domain.Account, error) {
	return s.repo.List(ctx, strings.TrimSpace(roleFilter))
}

func (s *accountService) Create(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
	account := &domain.Account{
		Email:       value(in.Email),
		Domain:      value(in.Domain),
		Designation: value(in.Designation),
		Status:      orDefault(value(in.Status), domain.StatusActive),
		CreatedAt:   s.now().UTC(),
	}

	if s.kind == domain.KindUser {
		account.Role = domain.RoleUser
		account.Username = orDefault(value(in.FullName), value(in.Username))
	} else {
		account.Role = orDefault(value(in.Role), domain.RoleAdmin)
		account.Username = orDefault(value(in.Username), value(in.FullName))
		if isMentorDesignation(account.Designation) {
			account.Role = domain.RoleMentor
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(orDefault(value(in.Password), domain.DefaultPassword)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)

	if id := strings.TrimSpace(value(in.CustomID)); id != "" {
		account.CustomID = id
		return s.repo.Create(ctx, account)
	}

	// Counting and inserting must not interleave with another create for
	// the same prefix or two accounts end up with the same custom ID.
	prefix := domain.IDPrefix(account.Role)
	var created *domain.Account
	err = s.locker.WithLock(ctx, "isms:custom-id:"+prefix, customIDLockTTL, func(ctx context.Context) error {
		countRole := account.Role
		if s.kind == domain.KindUser {
			countRole = ""
		}
		n, err := s.repo.CountByRole(ctx, countRole)
		if err != nil {
			return fmt.Errorf("count accounts: %w", err)
		}
		account.CustomID = domain.CustomID(prefix, account.CreatedAt, n+1)
		created, err = s.repo.Create(ctx, account)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

func (s *accountService) Update(ctx context.Context, id int64, in ports.AccountInput) (*domain.Account, error) {
	patch := ports.AccountPatch{
		CustomID:    in.CustomID,
		Email:       in.Email,
		Domain:      in.Domain,
		Designation: in.Designation,
		Status:      in.Status,
	}
	if in.FullName != nil {
		patch.Username = in.FullName
	} else if in.Username != nil {
		patch.Username = in.Username
	}
	if s.kind == domain.KindAdmin {
		patch.Role = in.Role
		if in.Designation != nil && isMentorDesignation(*in.Designation) {
			mentor := domain.RoleMentor
			patch.Role = &mentor
		}
	}
	if pw := value(in.Password); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		patch.PasswordHash = &h
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes the account. Staff deletions are recorded in the audit
// trail under the acting account.
func (s *accountService) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.kind != domain.KindUser {
		return nil
	}

	entry := &domain.LogEntry{
		Username:  actor.Username,
		LoginTime: domain.Timestamp(s.now()),
		Email:     orDefault(actor.Email, "System"),
		Domain:    actor.Domain,
		Role:      orDefault(actor.Role, "System"),
		Action:    "Deleted User: " + deleted.Username,
	}
	if _, err := s.logs.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("failed to record user deletion")
	}
	return nil
}

func isMentorDesignation(designation string) bool {
	return strings.EqualFold(strings.TrimSpace(designation), domain.RoleMentor)
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
