package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated request carries the expected role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := RoleFromContext(c)
			if value == "" {
				return deny(c, http.StatusForbidden, "missing role")
			}
			if value != role {
				return deny(c, http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireSelfOrRole lets the request through when the path parameter param names the
// authenticated person, or when the caller holds role.
func RequireSelfOrRole(param, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if RoleFromContext(c) == role {
				return next(c)
			}

			target, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err == nil && target > 0 && target == UserIDFromContext(c) {
				return next(c)
			}
			return deny(c, http.StatusForbidden, "insufficient permissions")
		}
	}
}
