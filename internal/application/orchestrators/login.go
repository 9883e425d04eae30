package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	domain "steppingstones/internal/domain/admin"
)

// AdminUserStore defines the lookup interface needed by Login. The seeded
// operator store and the backend admin_users store both implement it.
type AdminUserStore interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds the authentication provider chain, tried in order. The
// seeded operator store comes first, then the backend lookup.
type LoginDeps struct {
	Providers []AdminUserStore
}

// ErrInvalidCredentials is returned for any failed authentication; it never
// distinguishes an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin authenticates an admin against the provider chain.
// PRE: deps.Providers is non-empty
// POST: returns the matched active user on success; bad credentials return
// ErrInvalidCredentials, never a panic or a provider error
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	for _, provider := range deps.Providers {
		user, err := provider.GetByEmail(ctx, input.Email)
		if err != nil {
			continue
		}
		if !user.IsActive || !user.CheckPassword(input.Password) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
			return domain.User{}, ErrInvalidCredentials
		}
		slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", user.Role)
		return user, nil
	}

	slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
	return domain.User{}, ErrInvalidCredentials
}
