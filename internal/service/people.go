package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/dto"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/repository"
)

var (
	// ErrInvalidID indicates a malformed person identifier.
	ErrInvalidID = errors.New("invalid user id")
	// ErrInvalidRole indicates an unsupported role name.
	ErrInvalidRole = errors.New("invalid role")
)

// PeopleService exposes profile operations over stored people.
type PeopleService struct {
	repo      repository.PeopleRepository
	validator *PersonValidator
}

// NewPeopleService builds a new PeopleService instance.
func NewPeopleService(repo repository.PeopleRepository, validator *PersonValidator) *PeopleService {
	return &PeopleService{repo: repo, validator: validator}
}

// ParseID converts a path parameter into a positive identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Get returns a single person.
func (s *PeopleService) Get(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// List returns all people.
func (s *PeopleService) List(ctx context.Context) ([]dto.PersonResponse, error) {
	people, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PersonResponse, 0, len(people))
	for i := range people {
		responses = append(responses, toPersonResponse(&people[i]))
	}
	return responses, nil
}

// Update replaces the profile of an existing person. The role is never changed here.
func (s *PeopleService) Update(ctx context.Context, id int64, req dto.PersonRequest) (*dto.PersonResponse, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(ctx, &req, false, id); err != nil {
		return nil, err
	}

	person.Username = req.Username
	person.Email = req.Email
	person.YearOfBirth = req.YearOfBirth
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		person.PasswordHash = hashed
	}

	updated, err := s.repo.Update(ctx, person)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ValidationErrors{"username": UsernameTakenMessage(req.Username)}
		}
		return nil, err
	}

	resp := toPersonResponse(updated)
	return &resp, nil
}

// Delete removes a person by id.
func (s *PeopleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ChangeRole assigns ROLE_USER or ROLE_ADMIN. The "ROLE_" prefix is optional in the input.
func (s *PeopleService) ChangeRole(ctx context.Context, id int64, role string) (*dto.PersonResponse, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}

	person, err := s.repo.UpdateRole(ctx, id, normalized)
	if err != nil {
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// NormalizeRole maps "admin", "ROLE_ADMIN" and friends onto the stored role names.
func NormalizeRole(role string) (string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && !strings.HasPrefix(role, "ROLE_") {
		role = "ROLE_" + role
	}
	switch role {
	case entity.RoleUser, entity.RoleAdmin:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

func toPersonResponse(p *entity.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:          p.ID,
		Username:    p.Username,
		Email:       p.Email,
		YearOfBirth: p.YearOfBirth,
		Role:        p.Role,
	}
}
