package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers email through a plain SMTP relay, for deployments that
// prefer their own mail host over the Resend API.
type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPSender creates a sender for the given SMTP relay.
// PRE: host and port identify a reachable SMTP server; from is a valid sender address
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, password: password, from: from}
}

// Send delivers a single email over SMTP. The context is honored between
// dial and send via the dialer's own timeouts; gomail has no context hook.
// PRE: req has at least one recipient and a subject
// POST: Email handed to the relay; MessageID is synthesized since SMTP has none
func (s *SMTPSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	from := req.From
	if from == "" {
		from = s.from
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", req.To...)
	m.SetHeader("Subject", req.Subject)
	if req.ReplyTo != "" {
		m.SetHeader("Reply-To", req.ReplyTo)
	}
	m.SetBody("text/html", req.HTML)

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		slog.Error("smtp_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	id := fmt.Sprintf("smtp-%d", time.Now().UnixNano())
	slog.Info("smtp_sent", "message_id", id, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
