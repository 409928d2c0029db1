package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/people-api/internal/dto"
	"github.com/octobees/people-api/internal/service"
)

// PeopleHandler exposes profile endpoints and their administrative counterparts.
type PeopleHandler struct {
	people *service.PeopleService
}

// NewPeopleHandler constructs a handler instance.
func NewPeopleHandler(people *service.PeopleService) *PeopleHandler {
	return &PeopleHandler{people: people}
}

// Get returns a single person.
func (h *PeopleHandler) Get(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	person, err := h.people.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to load user")
	}
	return Success(c, http.StatusOK, "user retrieved", person)
}

// Update replaces a person's profile.
func (h *PeopleHandler) Update(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	var req dto.PersonRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	person, err := h.people.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err, "failed to update user")
	}
	return Success(c, http.StatusOK, "User updated successfully", person)
}

// Delete removes a person.
func (h *PeopleHandler) Delete(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	if err := h.people.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err, "failed to delete user")
	}
	return Success(c, http.StatusOK, "User deleted successfully", nil)
}

// List returns all people.
func (h *PeopleHandler) List(c echo.Context) error {
	people, err := h.people.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to list users")
	}
	return Success(c, http.StatusOK, "users retrieved", people)
}

// ChangeRole assigns a new role to a person.
func (h *PeopleHandler) ChangeRole(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	var req dto.ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	person, err := h.people.ChangeRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return serviceError(c, err, "failed to change role")
	}
	return Success(c, http.StatusOK, "role updated", person)
}
