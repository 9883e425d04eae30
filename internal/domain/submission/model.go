package submission

import (
	"errors"
	"time"
)

// Lead statuses a submission moves through.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
)

// ErrInvalidStatus is returned when a transition targets an unknown status.
var ErrInvalidStatus = errors.New("invalid submission status")

// NewSubmission carries the validated contact-form fields before persistence.
type NewSubmission struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

// Submission is a persisted contact-form enquiry.
type Submission struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Message     string
	Status      string
	Notes       string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// FullName joins first and last name for display.
func (s Submission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// IsValidStatus reports whether status is one of the known lead statuses.
func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusConverted:
		return true
	}
	return false
}

// Transition moves the submission to the given status, optionally replacing
// its notes, and touches UpdatedAt.
// PRE: now is the caller's clock reading
// POST: Status is the new status and UpdatedAt == now; nil notes leaves the
// existing notes untouched
func (s *Submission) Transition(status string, notes *string, now time.Time) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	s.Status = status
	if notes != nil {
		s.Notes = *notes
	}
	s.UpdatedAt = now
	return nil
}

// Stats aggregates dashboard counts by lead status.
type Stats struct {
	Total     int
	New       int
	Contacted int
	Converted int
}

// Add counts one submission into the aggregate.
func (st *Stats) Add(s Submission) {
	st.Total++
	switch s.Status {
	case StatusNew:
		st.New++
	case StatusContacted:
		st.Contacted++
	case StatusConverted:
		st.Converted++
	}
}
