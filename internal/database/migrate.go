package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dialect selects the DDL flavour used by Migrate.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS person_security (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(20) NOT NULL,
	year_of_birth INTEGER,
	password TEXT NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'ROLE_USER',
	email TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT person_security_username_key UNIQUE (username)
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS person_security (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	year_of_birth INTEGER,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'ROLE_USER',
	email TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// ExecFunc runs a single DDL statement.
type ExecFunc func(ctx context.Context, query string) error

// PoolExec adapts a pgx pool to ExecFunc.
func PoolExec(pool *pgxpool.Pool) ExecFunc {
	return func(ctx context.Context, query string) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}

// SQLExec adapts a database/sql handle to ExecFunc.
func SQLExec(db *sql.DB) ExecFunc {
	return func(ctx context.Context, query string) error {
		_, err := db.ExecContext(ctx, query)
		return err
	}
}

// Migrate creates the person table if it does not exist yet.
func Migrate(ctx context.Context, exec ExecFunc, dialect Dialect) error {
	var schema string
	switch dialect {
	case DialectPostgres:
		schema = postgresSchema
	case DialectSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect: %q", dialect)
	}

	if err := exec(ctx, schema); err != nil {
		return fmt.Errorf("create person_security table: %w", err)
	}
	return nil
}
