package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/octobees/people-api/internal/entity"
)

// SQLitePeopleRepository implements PeopleRepository on an embedded sqlite database.
type SQLitePeopleRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLitePeopleRepository wires a sqlite backed repository.
func NewSQLitePeopleRepository(db *sql.DB) *SQLitePeopleRepository {
	return &SQLitePeopleRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLitePeopleRepository) FindByUsername(ctx context.Context, username string) (*entity.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM person_security WHERE username = ?`, username)
	return r.scanOne(row, "query person by username")
}

func (r *SQLitePeopleRepository) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM person_security WHERE id = ?`, id)
	return r.scanOne(row, "query person by id")
}

func (r *SQLitePeopleRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person payload is nil")
	}

	now := r.now()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO person_security (username, year_of_birth, password, role, email, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		person.Username, person.YearOfBirth, person.PasswordHash, person.Role, person.Email, now, now,
	)
	if err != nil {
		if isSQLiteUnique(err) {
			return nil, fmt.Errorf("%w: %v", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("person last insert id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *SQLitePeopleRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if person == nil {
		return nil, fmt.Errorf("person payload is nil")
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE person_security
SET username = ?, year_of_birth = ?, email = ?, password = ?, updated_at = ?
WHERE id = ?`,
		person.Username, person.YearOfBirth, person.Email, person.PasswordHash, r.now(), person.ID,
	)
	if err != nil {
		if isSQLiteUnique(err) {
			return nil, fmt.Errorf("%w: %v", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("update person: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, person.ID)
}

func (r *SQLitePeopleRepository) UpdateRole(ctx context.Context, id int64, role string) (*entity.Person, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE person_security SET role = ?, updated_at = ? WHERE id = ?`, role, r.now(), id)
	if err != nil {
		return nil, fmt.Errorf("update person role: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *SQLitePeopleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM person_security WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return requireAffected(res)
}

func (r *SQLitePeopleRepository) List(ctx context.Context) ([]entity.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM person_security ORDER BY id`)
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

func (r *SQLitePeopleRepository) scanOne(row *sql.Row, op string) (*entity.Person, error) {
	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return person, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func isSQLiteUnique(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
