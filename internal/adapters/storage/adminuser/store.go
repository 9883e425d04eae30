package adminuser

import (
	"context"

	domain "steppingstones/internal/domain/admin"
)

// Store looks up admin users for authentication.
type Store interface {
	// GetByEmail returns the active admin user with the given email, or
	// storage.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
