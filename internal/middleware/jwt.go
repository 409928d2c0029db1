package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/repository"
)

// PersonFinder reloads the account behind a token.
type PersonFinder interface {
	FindByID(ctx context.Context, id int64) (*entity.Person, error)
}

// JWT validates bearer tokens and stores the caller in the request context.
// With a non-nil people the account is reloaded on every request, so deleted
// accounts are rejected and role or username changes apply to existing tokens.
func JWT(manager *authpkg.JWTManager, people PersonFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return deny(c, http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return deny(c, http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := manager.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return deny(c, http.StatusUnauthorized, "invalid token")
			}

			userID, username, role := claims.UserID, claims.Subject, claims.Role
			if people != nil {
				person, err := people.FindByID(c.Request().Context(), claims.UserID)
				if err != nil {
					if errors.Is(err, repository.ErrPersonNotFound) {
						return deny(c, http.StatusUnauthorized, "account no longer exists")
					}
					c.Set(ContextKeyError, err)
					return deny(c, http.StatusInternalServerError, "unable to authenticate")
				}
				userID, username, role = person.ID, person.Username, person.Role
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyUsername, username)
			c.Set(ContextKeyUserRole, role)

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated person id, or 0.
func UserIDFromContext(c echo.Context) int64 {
	if val, ok := c.Get(ContextKeyUserID).(int64); ok {
		return val
	}
	return 0
}

// UsernameFromContext returns the authenticated username, or "".
func UsernameFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyUsername).(string); ok {
		return val
	}
	return ""
}

// RoleFromContext returns the authenticated role, or "".
func RoleFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyUserRole).(string); ok {
		return val
	}
	return ""
}
