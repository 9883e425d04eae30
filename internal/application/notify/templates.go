package notify

import (
	"bytes"
	"fmt"
	"html/template"

	domain "steppingstones/internal/domain/submission"
)

// Branded HTML shells for the three notification kinds, modeled on the
// SteppingStones marketing palette. Bodies are kept simple enough to render
// in every mail client.

var receiptTemplate = template.Must(template.New("receipt").Parse(`
<div style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #914051 0%, #b35669 100%); padding: 40px 20px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0;">SteppingStones</h1>
    <p style="color: #ffffff; margin: 10px 0 0 0; opacity: 0.9;">Marriage Facilitation Services</p>
  </div>
  <div style="padding: 40px 20px;">
    <h2 style="color: #333333;">Thank you, {{.FirstName}}!</h2>
    <p style="color: #555; line-height: 1.6;">
      We have received your message and truly appreciate your interest in our
      marriage facilitation services. Our team will review it and reach out to
      schedule a personal consultation within 24 hours.
    </p>
    <div style="background-color: #e8f5e8; padding: 20px; border-radius: 8px; text-align: center;">
      <p style="margin: 0; color: #2e7d32; font-weight: 600;">Your Reference Number: {{.ID}}</p>
      <p style="margin: 5px 0 0 0; color: #666; font-size: 14px;">Please keep this for your records</p>
    </div>
  </div>
</div>`))

var alertTemplate = template.Must(template.New("alert").Parse(`
<div style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #914051 0%, #b35669 100%); padding: 40px 20px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0;">SteppingStones</h1>
    <p style="color: #ffffff; margin: 10px 0 0 0; opacity: 0.9;">New Contact Form Submission</p>
  </div>
  <div style="padding: 40px 20px;">
    <div style="background-color: #e3f2fd; padding: 15px; border-radius: 8px; text-align: center;">
      <p style="margin: 0; color: #1976d2; font-weight: 600;">Submission ID: {{.ID}}</p>
    </div>
    <div style="background-color: #f8f9fa; padding: 25px; border-radius: 12px; margin: 20px 0; border-left: 4px solid #914051;">
      <p style="margin: 4px 0; color: #333;"><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
      <p style="margin: 4px 0;"><strong>Email:</strong> <a href="mailto:{{.Email}}" style="color: #914051;">{{.Email}}</a></p>
      <p style="margin: 4px 0;"><strong>Phone:</strong> <a href="tel:{{.Phone}}" style="color: #914051;">{{.Phone}}</a></p>
    </div>
    <h3 style="color: #333333;">Message</h3>
    <div style="background-color: #f8f9fa; padding: 25px; border-radius: 12px; border-left: 4px solid #914051;">
      <p style="color: #333; line-height: 1.6; margin: 0; white-space: pre-wrap;">{{.Message}}</p>
    </div>
  </div>
</div>`))

var replyTemplate = template.Must(template.New("reply").Parse(`
<div style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #914051 0%, #b35669 100%); padding: 40px 20px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0;">SteppingStones</h1>
    <p style="color: #ffffff; margin: 10px 0 0 0; opacity: 0.9;">Marriage Facilitation Services</p>
  </div>
  <div style="padding: 40px 20px;">
    <h2 style="color: #333333;">Hello {{.Name}}!</h2>
    <div style="color: #555; line-height: 1.6; white-space: pre-wrap;">{{.Body}}</div>
    <div style="background-color: #f8f9fa; padding: 25px; border-radius: 12px; border-left: 4px solid #914051; margin: 30px 0;">
      <h3 style="color: #914051; margin: 0 0 15px 0;">Get in Touch</h3>
      <p style="color: #555; margin: 5px 0;"><strong>Phone:</strong> {{.Phone}}</p>
      <p style="color: #555; margin: 5px 0;"><strong>Email:</strong> {{.Inbox}}</p>
    </div>
  </div>
</div>`))

type replyData struct {
	Name  string
	Body  string
	Phone string
	Inbox string
}

func renderReceipt(sub domain.Submission) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, sub); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

func renderAlert(sub domain.Submission) (string, error) {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, sub); err != nil {
		return "", fmt.Errorf("render alert: %w", err)
	}
	return buf.String(), nil
}

func renderReply(d replyData) (string, error) {
	var buf bytes.Buffer
	if err := replyTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render reply: %w", err)
	}
	return buf.String(), nil
}
