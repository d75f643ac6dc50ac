package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

// AccountHandler serves one account collection: /api/admins or /api/users.
type AccountHandler struct {
	accountService ports.AccountService
	kind           domain.AccountKind
}

func NewAccountHandler(accountService ports.AccountService, kind domain.AccountKind) *AccountHandler {
	return &AccountHandler{accountService: accountService, kind: kind}
}

// accountRequest is shared by create and update. Absent fields stay nil so
// updates only touch what was sent. The console names the domain field
// "Domain"; older forms send "department".
type accountRequest struct {
	FullName    *string `json:"fullName"`
	Username    *string `json:"username"`
	UserID      *string `json:"userId"`
	AdminID     *string `json:"adminId"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	Domain      *string `json:"Domain"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
	Status      *string `json:"status"`
}

func (r accountRequest) input(kind domain.AccountKind) ports.AccountInput {
	customID := r.UserID
	if kind == domain.KindAdmin || customID == nil {
		customID = firstNonNil(r.AdminID, r.UserID)
	}
	return ports.AccountInput{
		CustomID:    customID,
		Username:    r.Username,
		FullName:    r.FullName,
		Email:       r.Email,
		Password:    r.Password,
		Role:        r.Role,
		Domain:      firstNonNil(r.Domain, r.Department),
		Designation: r.Designation,
		Status:      r.Status,
	}
}

func firstNonNil(ss ...*string) *string {
	for _, s := range ss {
		if s != nil {
			return s
		}
	}
	return nil
}

// List returns the accounts of this collection.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Role filter (substring, case-insensitive)"
// @Success      200   {array}   domain.Account
// @Failure      401   {object}  map[string]any
// @Router       /api/users [get]
// @Router       /api/admins [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create registers an account. A custom ID is generated when none is sent.
//
// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      accountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Failure      503   {object}  map[string]any
// @Router       /api/users [post]
// @Router       /api/admins [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}
	if strings.TrimSpace(derefOr(req.FullName, "")+derefOr(req.Username, "")) == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "fullName is required")
	}

	account, err := h.accountService.Create(c.Request().Context(), req.input(h.kind))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Update applies a partial update.
//
// @Summary      Update account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Account ID"
// @Param        body  body      accountRequest  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /api/users/{id} [put]
// @Router       /api/admins/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	account, err := h.accountService.Update(c.Request().Context(), id, req.input(h.kind))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account.
//
// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [delete]
// @Router       /api/admins/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	if err := h.accountService.Delete(c.Request().Context(), id, actor); err != nil {
		return err
	}

	msg := "User deleted successfully"
	if h.kind == domain.KindAdmin {
		msg = "Admin deleted successfully"
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: msg})
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
