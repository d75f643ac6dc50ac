package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/api/metrics"
	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginRequest accepts a username or an email in "username". The console
// also sends the role it expects; the stored role wins.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
	Token   string          `json:"token"`
}

type logoutRequest struct {
	Username string `json:"username"`
}

// Login authenticates a console account and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrCredentialsRequired) {
			result = "invalid"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		User:    res.Account,
		Token:   res.Token,
	})
}

// Logout marks the account offline and closes its open session log.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      logoutRequest  true  "Account to log out"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	if err := h.authService.Logout(c.Request().Context(), req.Username); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Logged out successfully"})
}
