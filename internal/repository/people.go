package repository

import (
	"context"
	"errors"

	"github.com/octobees/people-api/internal/entity"
)

var (
	// ErrPersonNotFound is returned when no person matches the lookup criteria.
	ErrPersonNotFound = errors.New("person not found")
	// ErrUsernameTaken is returned when the unique username constraint rejects a write.
	ErrUsernameTaken = errors.New("username already exists")
)

// PeopleRepository declares persistence operations for people.
type PeopleRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Person, error)
	FindByID(ctx context.Context, id int64) (*entity.Person, error)
	Create(ctx context.Context, person *entity.Person) (*entity.Person, error)
	// Update replaces username, email, year of birth and password hash. The role is left untouched.
	Update(ctx context.Context, person *entity.Person) (*entity.Person, error)
	UpdateRole(ctx context.Context, id int64, role string) (*entity.Person, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]entity.Person, error)
}

const personColumns = `id, username, year_of_birth, password, role, email, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*entity.Person, error) {
	var person entity.Person
	err := row.Scan(
		&person.ID,
		&person.Username,
		&person.YearOfBirth,
		&person.PasswordHash,
		&person.Role,
		&person.Email,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &person, nil
}
