package orchestrators

import (
	"log/slog"

	"github.com/google/uuid"

	domain "steppingstones/internal/domain/admin"
)

// SeedOperatorInput carries the operator account configured at startup.
type SeedOperatorInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// OperatorSeeder registers an operator account in the seeded credential tier.
type OperatorSeeder interface {
	Seed(domain.User)
}

// ExecuteSeedOperator registers the configured operator account in the seeded
// credential tier. The password is bcrypt-hashed; no literal password is kept.
// PRE: input.Email and input.Password are non-empty
// POST: the operator can authenticate through the seeded provider
func ExecuteSeedOperator(store OperatorSeeder, input SeedOperatorInput) error {
	user := domain.User{
		ID:       "op-" + uuid.NewString(),
		Email:    input.Email,
		Name:     input.Name,
		Role:     input.Role,
		IsActive: true,
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return err
	}
	store.Seed(user)
	slog.Info("auth_event", "event", "operator_seeded", "email", input.Email, "role", input.Role)
	return nil
}
