package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/people-api/internal/entity"
)

const uniqueViolation = "23505"

type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXPeopleRepository implements PeopleRepository with pgx.
type PGXPeopleRepository struct {
	pool pgxPool
}

// NewPGXPeopleRepository instantiates a people repository.
func NewPGXPeopleRepository(pool *pgxpool.Pool) *PGXPeopleRepository {
	return &PGXPeopleRepository{pool: pool}
}

// FindByUsername fetches a person by username if present.
func (r *PGXPeopleRepository) FindByUsername(ctx context.Context, username string) (*entity.Person, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+personColumns+` FROM person_security WHERE username = $1`, username)

	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("query person by username: %w", err)
	}
	return person, nil
}

// FindByID retrieves a person by identifier.
func (r *PGXPeopleRepository) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+personColumns+` FROM person_security WHERE id = $1`, id)

	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("query person by id: %w", err)
	}
	return person, nil
}

// Create inserts a new person row.
func (r *PGXPeopleRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO person_security (username, year_of_birth, password, role, email)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+personColumns,
		person.Username, person.YearOfBirth, person.PasswordHash, person.Role, person.Email)

	created, err := scanPerson(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}
	return created, nil
}

// Update replaces the mutable profile columns of an existing person.
func (r *PGXPeopleRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        UPDATE person_security
        SET username = $1, year_of_birth = $2, email = $3, password = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING `+personColumns,
		person.Username, person.YearOfBirth, person.Email, person.PasswordHash, person.ID)

	updated, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("update person: %w", err)
	}
	return updated, nil
}

// UpdateRole sets the role of a person.
func (r *PGXPeopleRepository) UpdateRole(ctx context.Context, id int64, role string) (*entity.Person, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE person_security SET role = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING `+personColumns, role, id)

	updated, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("update person role: %w", err)
	}
	return updated, nil
}

// Delete removes a person by id.
func (r *PGXPeopleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM person_security WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrPersonNotFound
	}
	return nil
}

// List returns all people ordered by id.
func (r *PGXPeopleRepository) List(ctx context.Context) ([]entity.Person, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+personColumns+` FROM person_security ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []entity.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		people = append(people, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
