package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"steppingstones/internal/application/notify"
	"steppingstones/internal/application/validation"
	domain "steppingstones/internal/domain/submission"
)

// SubmissionSaver defines the store interface needed by SubmitContact.
// The fallback wrapper guarantees Save never fails: backend outages degrade
// to the in-memory tier instead of erroring.
type SubmissionSaver interface {
	Save(ctx context.Context, n domain.NewSubmission) (domain.Submission, error)
}

// SubmitContactInput carries the raw contact-form fields.
type SubmitContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

// SubmitContactResult is the definitive outcome shown to the end user: either
// success with a reference id, or per-field validation errors. Backend and
// provider failures never surface here.
type SubmitContactResult struct {
	Success      bool
	Message      string
	Errors       validation.FieldErrors
	SubmissionID string
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	Store      SubmissionSaver
	Dispatcher *notify.Dispatcher
}

// ExecuteSubmitContact runs the public submission pipeline:
// validate → persist → notify (best effort).
// PRE: deps.Store saves without error (fallback wrapper)
// POST: on validation failure no store or dispatch call is made; on success
// the record is durable in at least one tier before any email is attempted,
// and notification failure does not affect the result
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) SubmitContactResult {
	fields, fieldErrs := validation.ValidateContact(validation.ContactInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
	})
	if fieldErrs.Any() {
		return SubmitContactResult{
			Success: false,
			Message: "Please correct the errors below.",
			Errors:  fieldErrs,
		}
	}

	sub, err := deps.Store.Save(ctx, fields)
	if err != nil {
		// Unreachable behind the fallback wrapper; kept so a bare store
		// can still be wired in tests.
		slog.Error("contact_event", "event", "save_failed", "error", err.Error())
		return SubmitContactResult{
			Success: false,
			Message: "Something went wrong sending your message. Please try again or contact us directly.",
		}
	}

	slog.Info("contact_event", "event", "submission_saved", "submission_id", sub.ID, "email", sub.Email)

	deps.Dispatcher.SendReceipt(ctx, sub)
	deps.Dispatcher.SendAlert(ctx, sub)

	return SubmitContactResult{
		Success:      true,
		Message:      fmt.Sprintf("Thank you %s! We've received your message (Reference: %s) and will get back to you within 24 hours.", sub.FirstName, sub.ID),
		SubmissionID: sub.ID,
	}
}
