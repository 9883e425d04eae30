package submission

import (
	"context"

	domain "steppingstones/internal/domain/submission"
)

// Store persists ContactSubmission state.
//
// Implementations report missing records with storage.ErrNotFound from
// GetByID and with a false flag from UpdateStatus; backend failures are
// returned as errors and handled by the fallback wrapper.
type Store interface {
	// Save persists a new submission with status "new" and returns the
	// stored record including its resolved id and timestamps.
	Save(ctx context.Context, n domain.NewSubmission) (domain.Submission, error)

	// ListAll returns every submission ordered by submitted_at descending.
	ListAll(ctx context.Context) ([]domain.Submission, error)

	// GetByID returns one submission or storage.ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Submission, error)

	// UpdateStatus applies a status transition, overwrites notes when
	// notes != nil, and touches updated_at. The flag is false when no
	// record with the given id exists.
	UpdateStatus(ctx context.Context, id, status string, notes *string) (bool, error)
}
