package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/net/idna"

	"github.com/octobees/people-api/internal/dto"
	"github.com/octobees/people-api/internal/repository"
)

const (
	minUsernameLength = 2
	maxUsernameLength = 20
	minPasswordLength = 4
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
	minYearOfBirth    = 1900
)

var idnaProfile = idna.Lookup

// ValidationErrors maps request fields to a human readable reason.
type ValidationErrors map[string]string

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return strings.Join(parts, "; ")
}

// UsernameTakenMessage is reported against the username field when it is already registered.
func UsernameTakenMessage(username string) string {
	return fmt.Sprintf("User with name %s already exists", username)
}

// PersonValidator checks person payloads and username uniqueness.
type PersonValidator struct {
	people repository.PeopleRepository
	now    func() time.Time
}

// NewPersonValidator builds a validator backed by the people repository.
func NewPersonValidator(people repository.PeopleRepository) *PersonValidator {
	return &PersonValidator{people: people, now: time.Now}
}

// Validate normalises req in place and checks it. A username already owned by
// excludeID is not a conflict, which lets a person keep their own name on update.
// The returned error is either ValidationErrors or a lookup failure.
func (v *PersonValidator) Validate(ctx context.Context, req *dto.PersonRequest, requirePassword bool, excludeID int64) error {
	errs := ValidationErrors{}

	req.Username = strings.TrimSpace(req.Username)
	if req.Email != nil {
		normalized, err := NormalizeEmail(*req.Email)
		if err != nil {
			errs["email"] = "must be a valid email address"
		}
		if normalized == "" {
			req.Email = nil
		} else {
			req.Email = &normalized
		}
	}

	passwordRules := []validation.Rule{validation.Length(minPasswordLength, maxPasswordLength)}
	if requirePassword {
		passwordRules = append([]validation.Rule{validation.Required}, passwordRules...)
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required, validation.RuneLength(minUsernameLength, maxUsernameLength)),
		validation.Field(&req.Password, passwordRules...),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.YearOfBirth, validation.NilOrNotEmpty, validation.Min(minYearOfBirth), validation.Max(v.now().Year())),
	)
	if err != nil {
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate person: %w", err)
		}
		for field, fieldErr := range fieldErrs {
			if _, exists := errs[field]; !exists {
				errs[field] = fieldErr.Error()
			}
		}
	}

	if _, invalid := errs["username"]; !invalid {
		taken, err := v.usernameTaken(ctx, req.Username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			errs["username"] = UsernameTakenMessage(req.Username)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *PersonValidator) usernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	existing, err := v.people.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check username: %w", err)
	}
	return existing.ID != excludeID, nil
}

// NormalizeEmail trims and lower-cases an address and converts its domain to ASCII.
// A blank input yields an empty string and no error.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", nil
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email, errors.New("email must contain a local part and a domain")
	}

	asciiDomain, err := idnaProfile.ToASCII(email[at+1:])
	if err != nil {
		return email, fmt.Errorf("invalid email domain: %w", err)
	}
	if asciiDomain == "" {
		return email, errors.New("email domain must not be empty")
	}
	return email[:at+1] + asciiDomain, nil
}
