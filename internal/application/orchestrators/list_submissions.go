package orchestrators

import (
	"context"

	domain "steppingstones/internal/domain/submission"
)

// SubmissionLister defines the store interface needed by ListSubmissions.
type SubmissionLister interface {
	ListAll(ctx context.Context) ([]domain.Submission, error)
}

// ListSubmissionsResult carries the dashboard view: every submission newest
// first plus counts by lead status.
type ListSubmissionsResult struct {
	Submissions []domain.Submission
	Stats       domain.Stats
}

// ListSubmissionsDeps holds dependencies for ListSubmissions.
type ListSubmissionsDeps struct {
	Store SubmissionLister
}

// ExecuteListSubmissions loads all submissions and aggregates their stats.
// POST: Submissions ordered by submitted_at descending; Stats totals match
// the returned list
func ExecuteListSubmissions(ctx context.Context, deps ListSubmissionsDeps) (ListSubmissionsResult, error) {
	subs, err := deps.Store.ListAll(ctx)
	if err != nil {
		return ListSubmissionsResult{}, err
	}

	var stats domain.Stats
	for _, sub := range subs {
		stats.Add(sub)
	}
	return ListSubmissionsResult{Submissions: subs, Stats: stats}, nil
}
