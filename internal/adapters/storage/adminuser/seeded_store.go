package adminuser

import (
	"context"
	"sync"

	storage "steppingstones/internal/adapters/storage"
	domain "steppingstones/internal/domain/admin"
)

// SeededStore holds operator accounts seeded at startup. It is the fast path
// for environments without a full admin directory; credentials live in
// configuration, passwords are bcrypt-hashed like the backend tier's.
type SeededStore struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by email
}

// NewSeededStore creates an empty seeded store.
func NewSeededStore() *SeededStore {
	return &SeededStore{users: make(map[string]domain.User)}
}

// Seed registers an operator account.
// PRE: u.Email is non-empty and u.PasswordHash is set
// POST: the user is returned by GetByEmail when active
func (s *SeededStore) Seed(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
}

// GetByEmail returns a seeded active user or storage.ErrNotFound.
func (s *SeededStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok || !u.IsActive {
		return domain.User{}, storage.ErrNotFound
	}
	return u, nil
}
