package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nnsolutions/isms/internal/api/middleware"
	"github.com/nnsolutions/isms/internal/core/domain"
)

// actorFrom extracts the caller injected by the Auth middleware. A missing
// role means the middleware did not run and the request is rejected.
func actorFrom(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get(middleware.KeyRole).(string)
	if role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get(middleware.KeyUsername).(string)
	dom, _ := c.Get(middleware.KeyDomain).(string)
	email, _ := c.Get(middleware.KeyEmail).(string)
	return domain.Actor{Username: username, Role: role, Domain: dom, Email: email}, nil
}

// pathID parses the integer :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// successResponse is the acknowledgement body of writes that return no
// resource.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func invalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}
