package admin

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// bcryptCost is the work factor for password hashing (OWASP recommended minimum)
const bcryptCost = 12

// User is an operator allowed into the submissions dashboard.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	IsActive     bool
	PasswordHash string
}

// Validate checks field constraints before a user is stored.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return errors.New("valid email is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleSuperAdmin {
		return errors.New("role must be admin or super_admin")
	}
	return nil
}

// SetPassword hashes and stores the password.
// PRE: password is non-empty
// POST: PasswordHash is a bcrypt hash; the plaintext is never stored
func (u *User) SetPassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsSuperAdmin reports whether the user holds the elevated role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
