package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	storage "steppingstones/internal/adapters/storage"
	domain "steppingstones/internal/domain/submission"
)

// MemoryStore is the in-process fallback tier used when the managed backend
// is unreachable. It is explicitly owned and injectable,
// with no package-level list, so the degraded path can be tested in isolation.
type MemoryStore struct {
	mu   sync.Mutex
	subs []domain.Submission // newest first

	// GenerateID and Now are injectable for tests.
	GenerateID func() string
	Now        func() time.Time
}

// NewMemoryStore creates an empty fallback store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		GenerateID: func() string { return "mem-" + uuid.NewString() },
		Now:        time.Now,
	}
}

// Save prepends a new submission with a locally generated id.
// POST: record stored with status 'new' and submitted_at == updated_at; never fails
func (m *MemoryStore) Save(_ context.Context, n domain.NewSubmission) (domain.Submission, error) {
	now := m.Now()
	sub := domain.Submission{
		ID:          m.GenerateID(),
		FirstName:   n.FirstName,
		LastName:    n.LastName,
		Email:       n.Email,
		Phone:       n.Phone,
		Message:     n.Message,
		Status:      domain.StatusNew,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append([]domain.Submission{sub}, m.subs...)
	return sub, nil
}

// ListAll returns a copy of the stored submissions, newest first.
// POST: results ordered by submitted_at descending regardless of insertion order
func (m *MemoryStore) ListAll(_ context.Context) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Submission, len(m.subs))
	copy(out, m.subs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// GetByID returns one submission or storage.ErrNotFound.
func (m *MemoryStore) GetByID(_ context.Context, id string) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return domain.Submission{}, storage.ErrNotFound
}

// UpdateStatus transitions a stored submission in place.
// POST: returns (false, nil) when the id is unknown; on success notes are
// overwritten when provided and updated_at is touched
func (m *MemoryStore) UpdateStatus(_ context.Context, id, status string, notes *string) (bool, error) {
	if !domain.IsValidStatus(status) {
		return false, domain.ErrInvalidStatus
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == id {
			if err := m.subs[i].Transition(status, notes, m.Now()); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
