package orchestrators

import (
	"context"
	"log/slog"

	domain "steppingstones/internal/domain/submission"
)

// SubmissionTransitioner defines the store interface needed by the status
// transition orchestrators.
type SubmissionTransitioner interface {
	UpdateStatus(ctx context.Context, id, status string, notes *string) (bool, error)
}

// UpdateStatusInput carries an admin-triggered status transition.
type UpdateStatusInput struct {
	SubmissionID string
	Notes        *string // nil leaves existing notes untouched
	ActorEmail   string  // verified admin, for the event log
}

// UpdateStatusResult carries the short human-readable outcome shown to the admin.
type UpdateStatusResult struct {
	Success bool
	Message string
}

// UpdateStatusDeps holds dependencies for the transition orchestrators.
type UpdateStatusDeps struct {
	Store SubmissionTransitioner
}

// ExecuteMarkContacted transitions a submission to "contacted".
// PRE: caller holds a verified admin session
// POST: status applied and updated_at touched when the record exists in
// either tier; false store result maps to a failure message
func ExecuteMarkContacted(ctx context.Context, input UpdateStatusInput, deps UpdateStatusDeps) UpdateStatusResult {
	return executeTransition(ctx, input, deps, domain.StatusContacted, "Submission marked as contacted")
}

// ExecuteMarkConverted transitions a submission to "converted".
// PRE: caller holds a verified admin session
// POST: as ExecuteMarkContacted with target state converted
func ExecuteMarkConverted(ctx context.Context, input UpdateStatusInput, deps UpdateStatusDeps) UpdateStatusResult {
	return executeTransition(ctx, input, deps, domain.StatusConverted, "Submission marked as converted!")
}

func executeTransition(ctx context.Context, input UpdateStatusInput, deps UpdateStatusDeps, status, successMsg string) UpdateStatusResult {
	if input.SubmissionID == "" {
		return UpdateStatusResult{Success: false, Message: "Failed to update submission"}
	}

	ok, err := deps.Store.UpdateStatus(ctx, input.SubmissionID, status, input.Notes)
	if err != nil || !ok {
		slog.Info("lead_event", "event", "transition_failed", "submission_id", input.SubmissionID,
			"target_status", status, "actor", input.ActorEmail)
		return UpdateStatusResult{Success: false, Message: "Failed to update submission"}
	}

	slog.Info("lead_event", "event", "transition_applied", "submission_id", input.SubmissionID,
		"target_status", status, "actor", input.ActorEmail)
	return UpdateStatusResult{Success: true, Message: successMsg}
}
