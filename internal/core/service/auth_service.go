package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// AuthService implements login, logout and the bootstrap superadmin.
type AuthService struct {
	admins    ports.AccountRepository
	users     ports.AccountRepository
	logs      ports.LogRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

func NewAuthService(admins, users ports.AccountRepository, logs ports.LogRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		admins:    admins,
		users:     users,
		logs:      logs,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
}

// Login accepts a username or an email. Privileged accounts are checked
// before staff accounts.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	repo, account, err := s.lookup(ctx, func(r ports.AccountRepository) (*domain.Account, error) {
		return r.FindByLogin(ctx, identifier)
	})
	if err != nil {
		if isAccountNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	status := domain.StatusActive
	account, err = repo.Update(ctx, account.ID, ports.AccountPatch{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("login: set status: %w", err)
	}

	entry := &domain.LogEntry{
		Username:    account.Username,
		LoginTime:   domain.Timestamp(s.now()),
		Email:       account.Email,
		Domain:      account.Domain,
		Role:        account.Role,
		Designation: account.Designation,
		Action:      domain.ActionLoggedIn,
	}
	if _, err := s.logs.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("username", account.Username).Msg("failed to record login")
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Account: account}, nil
}

// Logout marks the account offline and closes its newest open session.
// Unknown usernames are accepted silently.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ErrUsernameRequired
	}

	repo, account, err := s.lookup(ctx, func(r ports.AccountRepository) (*domain.Account, error) {
		return r.FindByUsername(ctx, username)
	})
	if err != nil {
		if isAccountNotFound(err) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}

	status := domain.StatusOffline
	if _, err := repo.Update(ctx, account.ID, ports.AccountPatch{Status: &status}); err != nil {
		return fmt.Errorf("logout: set status: %w", err)
	}

	closed, err := s.logs.CloseLatest(ctx, account.Username, s.now(), domain.ActionSessionCompleted)
	if err != nil {
		return fmt.Errorf("logout: close session: %w", err)
	}
	if !closed {
		s.log.Debug().Str("username", account.Username).Msg("no open session to close")
	}
	return nil
}

// SeedSuperAdmin makes sure the bootstrap superadmin exists. An existing
// account keeps its password but has its designation and domain reset.
func (s *AuthService) SeedSuperAdmin(ctx context.Context, password string) (*domain.Account, error) {
	if password == "" {
		password = domain.DefaultPassword
	}
	const (
		username    = "superadmin"
		email       = "superadmin@isms.com"
		domainName  = "Management"
		designation = "HR Head"
	)

	existing, err := s.admins.FindByUsername(ctx, username)
	switch {
	case err == nil:
		d, des := domainName, designation
		return s.admins.Update(ctx, existing.ID, ports.AccountPatch{Domain: &d, Designation: &des})
	case !isAccountNotFound(err):
		return nil, fmt.Errorf("seed superadmin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.admins.Create(ctx, &domain.Account{
		CustomID:     domain.CustomID(domain.IDPrefix(domain.RoleSuperAdmin), now, 1),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		Domain:       domainName,
		Designation:  designation,
		Status:       domain.StatusActive,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("seed superadmin: %w", err)
	}
	s.log.Info().Str("username", username).Msg("superadmin created")
	return created, nil
}

func (s *AuthService) lookup(ctx context.Context, find func(ports.AccountRepository) (*domain.Account, error)) (ports.AccountRepository, *domain.Account, error) {
	account, err := find(s.admins)
	if err == nil {
		return s.admins, account, nil
	}
	if !isAccountNotFound(err) {
		return nil, nil, err
	}
	account, err = find(s.users)
	if err != nil {
		return nil, nil, err
	}
	return s.users, account, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"username": account.Username,
		"role":     account.Role,
		"domain":   account.Domain,
		"email":    account.Email,
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func isAccountNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrAdminNotFound)
}
