package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"steppingstones/internal/domain/submission"
)

// Field length limits for the contact form, counted in characters (runes),
// not bytes, so non-ASCII names and messages measure the way they read.
const (
	MaxNameLength    = 50
	MinPhoneLength   = 8
	MaxPhoneLength   = 20
	MinMessageLength = 10
	MaxMessageLength = 1000
)

// ContactInput carries the raw contact-form fields as received.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

// FieldErrors maps a form field to its ordered list of human-readable messages.
type FieldErrors map[string][]string

// Any reports whether at least one field failed validation.
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// ValidateContact schema-checks the contact form.
// PRE: input carries the raw form values
// POST: returns the trimmed field set and an empty FieldErrors on success;
// on failure FieldErrors carries every violated constraint and the field set
// must not be persisted
func ValidateContact(input ContactInput) (submission.NewSubmission, FieldErrors) {
	fields := submission.NewSubmission{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Message:   strings.TrimSpace(input.Message),
	}

	errs := FieldErrors{}

	if fields.FirstName == "" {
		errs["firstName"] = append(errs["firstName"], "First name is required")
	} else if utf8.RuneCountInString(fields.FirstName) > MaxNameLength {
		errs["firstName"] = append(errs["firstName"], "First name must be less than 50 characters")
	}

	if fields.LastName == "" {
		errs["lastName"] = append(errs["lastName"], "Last name is required")
	} else if utf8.RuneCountInString(fields.LastName) > MaxNameLength {
		errs["lastName"] = append(errs["lastName"], "Last name must be less than 50 characters")
	}

	if fields.Email == "" {
		errs["email"] = append(errs["email"], "Please enter a valid email address")
	} else if _, err := mail.ParseAddress(fields.Email); err != nil {
		errs["email"] = append(errs["email"], "Please enter a valid email address")
	}

	phoneLen := utf8.RuneCountInString(fields.Phone)
	if phoneLen < MinPhoneLength {
		errs["phone"] = append(errs["phone"], "Please enter a valid phone number")
	} else if phoneLen > MaxPhoneLength {
		errs["phone"] = append(errs["phone"], "Phone number is too long")
	}

	messageLen := utf8.RuneCountInString(fields.Message)
	if messageLen < MinMessageLength {
		errs["message"] = append(errs["message"], "Message must be at least 10 characters")
	} else if messageLen > MaxMessageLength {
		errs["message"] = append(errs["message"], "Message is too long")
	}

	return fields, errs
}
