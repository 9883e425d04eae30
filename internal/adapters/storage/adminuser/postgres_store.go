package adminuser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	storage "steppingstones/internal/adapters/storage"
	domain "steppingstones/internal/domain/admin"
)

type postgresStore struct {
	db storage.SQLDB
}

// NewPostgresStore returns a Store backed by the admin_users table.
// PRE: db carries the elevated credential tier
func NewPostgresStore(db storage.SQLDB) Store {
	return &postgresStore{db: db}
}

// GetByEmail retrieves an active admin user by email.
// PRE: email is non-empty
// POST: returns the user or storage.ErrNotFound; inactive rows are invisible
func (s *postgresStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, is_active, password_hash
		FROM admin_users
		WHERE email = $1 AND is_active = TRUE`, email)

	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("admin user get: %w", err)
	}
	return u, nil
}
