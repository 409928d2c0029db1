package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	middlewarepkg "github.com/octobees/people-api/internal/middleware"
	"github.com/octobees/people-api/internal/repository"
	"github.com/octobees/people-api/internal/service"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// Invalid sends a 400 response listing the rejected fields.
func Invalid(c echo.Context, errs service.ValidationErrors) error {
	payload := APIResponse{
		Status:  "error",
		Message: "validation failed",
		Data:    map[string]string(errs),
	}
	return c.JSON(http.StatusBadRequest, payload)
}

// serviceError maps service and repository errors onto the envelope.
func serviceError(c echo.Context, err error, fallback string) error {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return Invalid(c, verrs)
	case errors.Is(err, repository.ErrPersonNotFound):
		return Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrInvalidRole):
		return Error(c, http.StatusBadRequest, err.Error())
	default:
		c.Set(middlewarepkg.ContextKeyError, err)
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
