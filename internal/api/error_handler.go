package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/core/domain"
)

// errorResponse is the error envelope. The legacy clients read "message";
// "error" is kept for tooling that expects it.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he == echo.ErrNotFound {
			return http.StatusNotFound, "Resource not found"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrCredentialsRequired):
		return http.StatusBadRequest, "Username and password are required"
	case errors.Is(err, domain.ErrUsernameRequired):
		return http.StatusBadRequest, "Username is required for logout"
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, "Admin not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "Report not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username or email already exists"
	case errors.Is(err, domain.ErrReportExists):
		return http.StatusConflict, "Report already exists"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to perform this action"
	case errors.Is(err, domain.ErrInvalidReportType):
		return http.StatusBadRequest, "Invalid report type"
	case errors.Is(err, domain.ErrInvalidScreenshot):
		return http.StatusBadRequest, "Invalid screenshot data"
	case errors.Is(err, domain.ErrLockNotObtained):
		return http.StatusServiceUnavailable, "Resource is busy, try again"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
