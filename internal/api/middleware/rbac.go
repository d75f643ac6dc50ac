package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control. Roles compare case-insensitively
// because staff accounts carry "User" while the console speaks "user".
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
				return c.JSON(http.StatusForbidden, map[string]any{
					"success": false,
					"error":   "forbidden",
					"message": "You do not have permission to perform this action",
				})
			}
			return next(c)
		}
	}
}
