package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/octobees/people-api/internal/dto"
	middlewarepkg "github.com/octobees/people-api/internal/middleware"
)

// SessionHandler reports on the authenticated caller.
type SessionHandler struct {
	log logrus.FieldLogger
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(logger logrus.FieldLogger) *SessionHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SessionHandler{log: logger}
}

// Show returns the principal carried by the bearer token.
func (h *SessionHandler) Show(c echo.Context) error {
	username := middlewarepkg.UsernameFromContext(c)
	if username == "" {
		return Error(c, http.StatusUnauthorized, "Unauthorized")
	}

	return Success(c, http.StatusOK, username, dto.PrincipalResponse{
		ID:       middlewarepkg.UserIDFromContext(c),
		Username: username,
		Role:     middlewarepkg.RoleFromContext(c),
	})
}

// Hello is a plain-text greeting for authenticated callers.
func (h *SessionHandler) Hello(c echo.Context) error {
	h.log.WithFields(logrus.Fields{
		"user_id":  middlewarepkg.UserIDFromContext(c),
		"username": middlewarepkg.UsernameFromContext(c),
		"role":     middlewarepkg.RoleFromContext(c),
	}).Info("hello requested")
	return c.String(http.StatusOK, "hello")
}
