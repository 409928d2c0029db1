package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/people-api/internal/dto"
	"github.com/octobees/people-api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/registration requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.PersonRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "unable to register user")
	}

	return Success(c, http.StatusCreated, "registration successful", resp)
}

// Login handles POST /api/v1/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "username and password are required")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, "Incorrect login or password")
		}
		return serviceError(c, err, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "login successful", dto.TokenResponse{Token: token})
}
