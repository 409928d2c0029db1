package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/dto"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingCredentials is returned when username or password is blank.
	ErrMissingCredentials = errors.New("username and password must not be empty")
)

// AuthService coordinates credential validation, registration and token issuance.
type AuthService struct {
	people    repository.PeopleRepository
	validator *PersonValidator
	jwt       *auth.JWTManager
	log       logrus.FieldLogger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(people repository.PeopleRepository, validator *PersonValidator, jwtManager *auth.JWTManager, logger logrus.FieldLogger) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{people: people, validator: validator, jwt: jwtManager, log: logger}
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	person, err := s.people.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			s.log.WithField("username", username).Info("login rejected: unknown username")
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(person.PasswordHash, password) {
		s.log.WithField("username", username).Info("login rejected: password mismatch")
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(person.ID, person.Username, person.Role)
}

// Register validates the payload, stores the person with the default role and returns a JWT.
func (s *AuthService) Register(ctx context.Context, req dto.PersonRequest) (*dto.RegistrationResponse, error) {
	if err := s.validator.Validate(ctx, &req, true, 0); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	person, err := s.people.Create(ctx, &entity.Person{
		Username:     req.Username,
		YearOfBirth:  req.YearOfBirth,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         entity.RoleUser,
	})
	if err != nil {
		// lost a race with a concurrent registration of the same name
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ValidationErrors{"username": UsernameTakenMessage(req.Username)}
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(person.ID, person.Username, person.Role)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"person_id": person.ID, "username": person.Username}).Info("person registered")
	return &dto.RegistrationResponse{Token: token, Person: toPersonResponse(person)}, nil
}

// EnsureAdmin makes sure an administrator account named username exists.
// An existing account is promoted without touching its password.
// It reports whether a new account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}

	existing, err := s.people.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return false, nil
		}
		if _, err := s.people.UpdateRole(ctx, existing.ID, entity.RoleAdmin); err != nil {
			return false, fmt.Errorf("promote admin: %w", err)
		}
		s.log.WithField("username", username).Warn("existing account promoted to administrator")
		return false, nil
	case !errors.Is(err, repository.ErrPersonNotFound):
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	creds := dto.PersonRequest{Username: username, Password: password}
	if err := s.validator.Validate(ctx, &creds, true, 0); err != nil {
		return false, fmt.Errorf("admin credentials: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	if _, err := s.people.Create(ctx, &entity.Person{
		Username:     username,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.log.WithField("username", username).Info("administrator account created")
	return true, nil
}
