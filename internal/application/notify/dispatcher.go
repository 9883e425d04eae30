package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"steppingstones/internal/adapters/email"
	domain "steppingstones/internal/domain/submission"
)

// Notification kinds.
const (
	KindReceipt = "receipt" // submitter receipt with reference number
	KindAlert   = "alert"   // internal alert to the business inbox
	KindReply   = "reply"   // admin reply on behalf of an operator
)

// DispatchStatus distinguishes "delivery attempted and failed" from
// "delivery skipped (provider not configured)".
type DispatchStatus string

const (
	StatusDelivered DispatchStatus = "delivered"
	StatusSkipped   DispatchStatus = "skipped"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchResult carries the outcome of one notification dispatch.
type DispatchResult struct {
	Status    DispatchStatus
	MessageID string
	Err       error
}

// ErrNotConfigured is returned for kinds that require a configured provider.
var ErrNotConfigured = errors.New("email service not configured")

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total notification dispatches by kind and outcome",
	},
	[]string{"kind", "status"},
)

// Dispatcher sends the three templated notification kinds through the
// configured email provider. A nil Sender means the provider is not
// configured: receipt and alert become no-ops, reply becomes a failure.
type Dispatcher struct {
	Sender        email.Sender
	From          string // sender address for all kinds
	ReplyTo       string // reply-to on outbound mail
	BusinessInbox string // fixed inbox receiving internal alerts
	ContactPhone  string // shown in the reply footer
}

// Configured reports whether a provider is wired.
func (d *Dispatcher) Configured() bool {
	return d != nil && d.Sender != nil
}

// SendReceipt emails the submitter their reference number (kind 1).
// POST: never returns an error to the caller; outcome is in the result
func (d *Dispatcher) SendReceipt(ctx context.Context, sub domain.Submission) DispatchResult {
	if !d.Configured() {
		return d.skip(KindReceipt, sub.ID)
	}
	html, err := renderReceipt(sub)
	if err != nil {
		return d.fail(KindReceipt, sub.ID, err)
	}
	return d.send(ctx, KindReceipt, sub.ID, email.SendRequest{
		To:      []string{sub.Email},
		From:    d.From,
		Subject: "Thank you for contacting SteppingStones",
		HTML:    html,
		ReplyTo: d.ReplyTo,
	})
}

// SendAlert emails the business inbox the full submission (kind 2).
// POST: never returns an error to the caller; outcome is in the result
func (d *Dispatcher) SendAlert(ctx context.Context, sub domain.Submission) DispatchResult {
	if !d.Configured() {
		return d.skip(KindAlert, sub.ID)
	}
	html, err := renderAlert(sub)
	if err != nil {
		return d.fail(KindAlert, sub.ID, err)
	}
	subject := fmt.Sprintf("New Contact Form Submission from %s [ID: %s]", sub.FullName(), sub.ID)
	return d.send(ctx, KindAlert, sub.ID, email.SendRequest{
		To:      []string{d.BusinessInbox},
		From:    d.From,
		Subject: subject,
		HTML:    html,
		ReplyTo: sub.Email,
	})
}

// SendReply emails the submitter an operator-authored message (kind 3).
// A reply with no delivery mechanism is a user-facing error, so an
// unconfigured provider yields StatusSkipped with ErrNotConfigured set.
// PRE: subject and body are non-empty (enforced by the orchestrator)
func (d *Dispatcher) SendReply(ctx context.Context, sub domain.Submission, subject, body string) DispatchResult {
	if !d.Configured() {
		notificationsTotal.WithLabelValues(KindReply, string(StatusSkipped)).Inc()
		slog.Warn("notify_event", "event", "dispatch_skipped", "kind", KindReply, "submission_id", sub.ID)
		return DispatchResult{Status: StatusSkipped, Err: ErrNotConfigured}
	}
	html, err := renderReply(replyData{
		Name:  sub.FullName(),
		Body:  body,
		Phone: d.ContactPhone,
		Inbox: d.BusinessInbox,
	})
	if err != nil {
		return d.fail(KindReply, sub.ID, err)
	}
	return d.send(ctx, KindReply, sub.ID, email.SendRequest{
		To:      []string{sub.Email},
		From:    d.From,
		Subject: subject,
		HTML:    html,
		ReplyTo: d.ReplyTo,
	})
}

func (d *Dispatcher) send(ctx context.Context, kind, submissionID string, req email.SendRequest) DispatchResult {
	res, err := d.Sender.Send(ctx, req)
	if err != nil {
		return d.fail(kind, submissionID, err)
	}
	notificationsTotal.WithLabelValues(kind, string(StatusDelivered)).Inc()
	slog.Info("notify_event", "event", "dispatch_delivered", "kind", kind,
		"submission_id", submissionID, "message_id", res.MessageID)
	return DispatchResult{Status: StatusDelivered, MessageID: res.MessageID}
}

func (d *Dispatcher) skip(kind, submissionID string) DispatchResult {
	notificationsTotal.WithLabelValues(kind, string(StatusSkipped)).Inc()
	slog.Info("notify_event", "event", "dispatch_skipped", "kind", kind, "submission_id", submissionID)
	return DispatchResult{Status: StatusSkipped}
}

func (d *Dispatcher) fail(kind, submissionID string, err error) DispatchResult {
	notificationsTotal.WithLabelValues(kind, string(StatusFailed)).Inc()
	slog.Error("notify_event", "event", "dispatch_failed", "kind", kind,
		"submission_id", submissionID, "error", err.Error())
	return DispatchResult{Status: StatusFailed, Err: err}
}
