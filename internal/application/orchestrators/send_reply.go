package orchestrators

import (
	"context"
	"log/slog"

	"steppingstones/internal/application/notify"
	domain "steppingstones/internal/domain/submission"
)

// SubmissionStoreForReply defines the store interface needed by SendReply.
type SubmissionStoreForReply interface {
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) (bool, error)
}

// SendReplyInput carries an admin reply to a submitter.
type SendReplyInput struct {
	SubmissionID string
	Subject      string
	Body         string
	ActorEmail   string // verified admin, for the event log
}

// SendReplyResult carries the outcome surfaced to the admin.
type SendReplyResult struct {
	Success bool
	Message string
}

// SendReplyDeps holds dependencies for SendReply.
type SendReplyDeps struct {
	Store      SubmissionStoreForReply
	Dispatcher *notify.Dispatcher

	// DowngradeConverted preserves the historically observed behavior of a
	// reply moving even a converted lead back to "contacted". Set false to
	// keep converted leads converted while still recording the reply note.
	DowngradeConverted bool
}

// ExecuteSendReply dispatches an admin reply and records it on the submission.
// PRE: caller holds a verified admin session
// POST: no dispatch is attempted when subject or body is empty or the
// submission is unknown; the status transition happens only after a
// successful dispatch, with notes "Reply sent: <subject>"
func ExecuteSendReply(ctx context.Context, input SendReplyInput, deps SendReplyDeps) SendReplyResult {
	if input.SubmissionID == "" {
		return SendReplyResult{Success: false, Message: "Failed to send reply"}
	}
	if input.Subject == "" || input.Body == "" {
		return SendReplyResult{Success: false, Message: "Subject and message are required"}
	}

	sub, err := deps.Store.GetByID(ctx, input.SubmissionID)
	if err != nil {
		return SendReplyResult{Success: false, Message: "Failed to send reply"}
	}

	res := deps.Dispatcher.SendReply(ctx, sub, input.Subject, input.Body)
	if res.Status != notify.StatusDelivered {
		msg := "Failed to send reply"
		if res.Err == notify.ErrNotConfigured {
			msg = "Email service not configured"
		}
		return SendReplyResult{Success: false, Message: msg}
	}

	// Reply implies contacted. Whether that may downgrade a converted lead
	// is configurable; the note is recorded either way.
	target := domain.StatusContacted
	if sub.Status == domain.StatusConverted && !deps.DowngradeConverted {
		target = domain.StatusConverted
	}
	note := "Reply sent: " + input.Subject
	if _, err := deps.Store.UpdateStatus(ctx, sub.ID, target, &note); err != nil {
		slog.Warn("lead_event", "event", "reply_note_failed", "submission_id", sub.ID, "error", err.Error())
	}

	slog.Info("lead_event", "event", "reply_sent", "submission_id", sub.ID,
		"subject", input.Subject, "actor", input.ActorEmail, "message_id", res.MessageID)
	return SendReplyResult{Success: true, Message: "Reply sent successfully!"}
}
