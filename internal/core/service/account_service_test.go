package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func newAccountFixture(kind domain.AccountKind) (*accountService, *stubAccountRepo, *stubLogRepo, *stubLocker) {
	notFound := domain.ErrAdminNotFound
	if kind == domain.KindUser {
		notFound = domain.ErrUserNotFound
	}
	repo := newStubAccountRepo(notFound)
	logs := &stubLogRepo{}
	locker := &stubLocker{}
	svc := NewAccountService(kind, repo, logs, locker, zerolog.Nop()).(*accountService)
	svc.now = fixedClock(time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC))
	return svc, repo, logs, locker
}

func TestAccountService_CreateAdmin_Defaults(t *testing.T) {
	svc, repo, _, locker := newAccountFixture(domain.KindAdmin)
	repo.seed(&domain.Account{Username: "a1", Role: domain.RoleAdmin})
	repo.seed(&domain.Account{Username: "m1", Role: domain.RoleMentor})

	created, err := svc.Create(context.Background(), ports.AccountInput{
		FullName: strPtr("Nadia"),
		Email:    strPtr("nadia@example.com"),
		Domain:   strPtr("HR"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleAdmin || created.Status != domain.StatusActive {
		t.Fatalf("unexpected defaults: %+v", created)
	}
	if created.Username != "Nadia" {
		t.Fatalf("expected username from full name, got %q", created.Username)
	}
	if created.CustomID != "AD/IN/26/0002" {
		t.Fatalf("expected second admin ID, got %s", created.CustomID)
	}
	if len(locker.keys) != 1 || locker.keys[0] != "isms:custom-id:AD" {
		t.Fatalf("expected custom ID lock, got %v", locker.keys)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.byID[created.ID].PasswordHash), []byte(domain.DefaultPassword)) != nil {
		t.Fatalf("expected default password hash")
	}
}

func TestAccountService_CreateAdmin_MentorDesignation(t *testing.T) {
	svc, _, _, _ := newAccountFixture(domain.KindAdmin)

	created, err := svc.Create(context.Background(), ports.AccountInput{
		Username:    strPtr("omar"),
		Role:        strPtr(domain.RoleAdmin),
		Designation: strPtr("MENTOR"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleMentor || created.CustomID != "MT/IN/26/0001" {
		t.Fatalf("expected mentor role and ID, got %+v", created)
	}
}

func TestAccountService_CreateUser(t *testing.T) {
	svc, repo, _, locker := newAccountFixture(domain.KindUser)
	repo.seed(&domain.Account{Username: "u1", Role: domain.RoleUser})

	created, err := svc.Create(context.Background(), ports.AccountInput{
		FullName: strPtr("Priya"),
		Role:     strPtr(domain.RoleAdmin),
		Domain:   strPtr("IT"),
		Password: strPtr("pw"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("staff role must be fixed, got %s", created.Role)
	}
	if created.CustomID != "US/IN/26/0002" || locker.keys[0] != "isms:custom-id:US" {
		t.Fatalf("unexpected ID %s (locks %v)", created.CustomID, locker.keys)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.byID[created.ID].PasswordHash), []byte("pw")) != nil {
		t.Fatalf("expected given password hash")
	}
}

func TestAccountService_Create_ExplicitIDSkipsLock(t *testing.T) {
	svc, _, _, locker := newAccountFixture(domain.KindUser)

	created, err := svc.Create(context.Background(), ports.AccountInput{
		CustomID: strPtr("US/IN/24/0100"),
		FullName: strPtr("Quinn"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CustomID != "US/IN/24/0100" || len(locker.keys) != 0 {
		t.Fatalf("expected explicit ID without lock, got %s %v", created.CustomID, locker.keys)
	}
}

func TestAccountService_Create_LockBusy(t *testing.T) {
	svc, repo, _, locker := newAccountFixture(domain.KindUser)
	locker.err = domain.ErrLockNotObtained

	_, err := svc.Create(context.Background(), ports.AccountInput{FullName: strPtr("Rae")})
	if !errors.Is(err, domain.ErrLockNotObtained) {
		t.Fatalf("expected ErrLockNotObtained, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing created")
	}
}

func TestAccountService_Update_Partial(t *testing.T) {
	svc, repo, _, _ := newAccountFixture(domain.KindAdmin)
	a := repo.seed(&domain.Account{Username: "sam", Email: "sam@example.com", Role: domain.RoleAdmin, PasswordHash: "old"})

	updated, err := svc.Update(context.Background(), a.ID, ports.AccountInput{
		FullName:    strPtr("Samuel"),
		Designation: strPtr("Mentor"),
		Password:    strPtr(""),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Username != "Samuel" || updated.Role != domain.RoleMentor {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if updated.Email != "sam@example.com" {
		t.Fatalf("absent fields must be kept, got email %q", updated.Email)
	}
	if repo.byID[a.ID].PasswordHash != "old" {
		t.Fatalf("empty password must not replace the hash")
	}
}

func TestAccountService_UpdateUser_IgnoresRole(t *testing.T) {
	svc, repo, _, _ := newAccountFixture(domain.KindUser)
	u := repo.seed(&domain.Account{Username: "tia", Role: domain.RoleUser})

	updated, err := svc.Update(context.Background(), u.ID, ports.AccountInput{Role: strPtr(domain.RoleSuperAdmin)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("staff role changed to %s", updated.Role)
	}
}

func TestAccountService_Update_NotFound(t *testing.T) {
	svc, _, _, _ := newAccountFixture(domain.KindAdmin)

	if _, err := svc.Update(context.Background(), 99, ports.AccountInput{}); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAccountService_DeleteUser_Audited(t *testing.T) {
	svc, repo, logs, _ := newAccountFixture(domain.KindUser)
	u := repo.seed(&domain.Account{Username: "uma"})

	actor := domain.Actor{Username: "superadmin", Role: domain.RoleSuperAdmin, Email: "superadmin@isms.com"}
	if err := svc.Delete(context.Background(), u.ID, actor); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	entry := logs.last()
	if entry == nil || entry.Action != "Deleted User: uma" || entry.Email != "superadmin@isms.com" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if err := svc.Delete(context.Background(), u.ID, actor); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestAccountService_DeleteAdmin_NotAudited(t *testing.T) {
	svc, repo, logs, _ := newAccountFixture(domain.KindAdmin)
	a := repo.seed(&domain.Account{Username: "vic"})

	if err := svc.Delete(context.Background(), a.ID, domain.Actor{}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(logs.entries) != 0 {
		t.Fatalf("expected no audit entry, got %d", len(logs.entries))
	}
}

func TestAccountService_List_TrimsFilter(t *testing.T) {
	svc, repo, _, _ := newAccountFixture(domain.KindAdmin)
	repo.seed(&domain.Account{Username: "a", Role: domain.RoleAdmin})
	repo.seed(&domain.Account{Username: "b", Role: domain.RoleSuperAdmin})
	repo.seed(&domain.Account{Username: "c", Role: domain.RoleMentor})

	got, err := svc.List(context.Background(), " admin ")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected admin and superadmin, got %d", len(got))
	}
}
