package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/api/middleware"
	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type stubAccountService struct {
	listFn   func(ctx context.Context, roleFilter string) ([]*domain.Account, error)
	createFn func(ctx context.Context, in ports.AccountInput) (*domain.Account, error)
	updateFn func(ctx context.Context, id int64, in ports.AccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, id int64, actor domain.Actor) error
}

func (s *stubAccountService) List(ctx context.Context, roleFilter string) ([]*domain.Account, error) {
	return s.listFn(ctx, roleFilter)
}

func (s *stubAccountService) Create(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAccountService) Update(ctx context.Context, id int64, in ports.AccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubAccountService) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	return s.deleteFn(ctx, id, actor)
}

func withActor(c echo.Context, username, role string) {
	c.Set(middleware.KeyUsername, username)
	c.Set(middleware.KeyRole, role)
	c.Set(middleware.KeyDomain, "Management")
	c.Set(middleware.KeyEmail, username+"@isms.com")
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func TestAccountHandler_List_PassesRoleFilter(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(ctx context.Context, roleFilter string) ([]*domain.Account, error) {
			if roleFilter != "mentor" {
				t.Fatalf("expected role filter mentor, got %q", roleFilter)
			}
			return []*domain.Account{{ID: 1, Username: "m1", Role: domain.RoleMentor}}, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindAdmin)

	c, rec := newJSONContext(http.MethodGet, "/api/admins?role=mentor", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_UserFields(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
			if in.FullName == nil || *in.FullName != "Jane Roe" {
				t.Fatalf("unexpected full name: %v", in.FullName)
			}
			if in.CustomID == nil || *in.CustomID != "US/IN/26/0042" {
				t.Fatalf("expected userId as custom id, got %v", in.CustomID)
			}
			if in.Domain == nil || *in.Domain != "Finance" {
				t.Fatalf("expected Domain Finance, got %v", in.Domain)
			}
			if in.Password != nil {
				t.Fatalf("absent password must stay nil")
			}
			return &domain.Account{ID: 9, CustomID: *in.CustomID, Username: *in.FullName, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindUser)

	c, rec := newJSONContext(http.MethodPost, "/api/users",
		`{"fullName":"Jane Roe","userId":"US/IN/26/0042","email":"jane@example.com","Domain":"Finance"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["username"] != "Jane Roe" || resp["custom_id"] != "US/IN/26/0042" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_Create_DepartmentFallback(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
			if in.Domain == nil || *in.Domain != "HR" {
				t.Fatalf("expected department HR, got %v", in.Domain)
			}
			return &domain.Account{ID: 1}, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindUser)

	c, _ := newJSONContext(http.MethodPost, "/api/users", `{"fullName":"Sam","department":"HR"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAccountHandler_Create_AdminIDForAdmins(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
			if in.CustomID == nil || *in.CustomID != "AD/IN/26/0002" {
				t.Fatalf("expected adminId as custom id, got %v", in.CustomID)
			}
			return &domain.Account{ID: 2}, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindAdmin)

	c, _ := newJSONContext(http.MethodPost, "/api/admins", `{"username":"root2","adminId":"AD/IN/26/0002"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAccountHandler_Create_RequiresName(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindUser)

	c, _ := newJSONContext(http.MethodPost, "/api/users", `{"email":"x@example.com"}`)
	err := handler.Create(c)

	if httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAccountHandler_Create_InvalidEmail(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(ctx context.Context, in ports.AccountInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAccountHandler(stub, domain.KindUser)

	c, _ := newJSONContext(http.MethodPost, "/api/users", `{"fullName":"Jane","email":"not-an-email"}`)
	err := handler.Create(c)

	if httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAccountHandler_Update_NotFound(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, id int64, in ports.AccountInput) (*domain.Account, error) {
			if id != 7 {
				t.Fatalf("expected id 7, got %d", id)
			}
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAccountHandler(stub, domain.KindUser)

	c, _ := newJSONContext(http.MethodPut, "/api/users/7", `{"status":"Offline"}`)
	withID(c, "7")
	err := handler.Update(c)

	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountHandler_Update_BadID(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{}, domain.KindUser)

	c, _ := newJSONContext(http.MethodPut, "/api/users/abc", `{}`)
	withID(c, "abc")
	err := handler.Update(c)

	if httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAccountHandler_Delete_Messages(t *testing.T) {
	cases := []struct {
		kind domain.AccountKind
		want string
	}{
		{domain.KindUser, "User deleted successfully"},
		{domain.KindAdmin, "Admin deleted successfully"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			stub := &stubAccountService{
				deleteFn: func(ctx context.Context, id int64, actor domain.Actor) error {
					if actor.Username != "root" || actor.Email != "root@isms.com" {
						t.Fatalf("unexpected actor: %+v", actor)
					}
					return nil
				},
			}
			handler := NewAccountHandler(stub, tc.kind)

			c, rec := newJSONContext(http.MethodDelete, "/api/x/5", "")
			withID(c, "5")
			withActor(c, "root", domain.RoleSuperAdmin)
			if err := handler.Delete(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			resp := decodeMap(t, rec)
			if resp["success"] != true || resp["message"] != tc.want {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}
