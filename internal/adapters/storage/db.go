package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Open connects to the managed Postgres backend with production pool settings
// and verifies the connection with a bounded ping.
// PRE: dsn is a Postgres connection string
// POST: returns a pooled, pinged *sql.DB or an error if the backend is unreachable
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the application tables if they do not exist.
// Runs against the elevated-credential pool; the restricted pool only holds
// INSERT on contact_submissions.
// PRE: db is a valid connection with DDL rights
// POST: contact_submissions and admin_users exist
func EnsureSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS contact_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		notes TEXT,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_contact_submissions_submitted_at
		ON contact_submissions (submitted_at DESC);

	CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		password_hash TEXT NOT NULL DEFAULT ''
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SQLDB is the subset of *sql.DB the stores depend on.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
