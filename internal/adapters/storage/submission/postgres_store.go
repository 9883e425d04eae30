package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	storage "steppingstones/internal/adapters/storage"
	domain "steppingstones/internal/domain/submission"
)

type postgresStore struct {
	// writeDB carries the restricted credential used for public inserts;
	// adminDB carries the elevated credential for reads and updates.
	writeDB storage.SQLDB
	adminDB storage.SQLDB
}

// NewPostgresStore returns a Store backed by the managed Postgres service.
// PRE: writeDB and adminDB are opened against the same database with their
// respective credential tiers
func NewPostgresStore(writeDB, adminDB storage.SQLDB) Store {
	return &postgresStore{writeDB: writeDB, adminDB: adminDB}
}

const submissionColumns = `id, first_name, last_name, email, phone, message,
		status, COALESCE(notes, ''), submitted_at, updated_at`

// Save inserts a new submission through the restricted credential tier.
// PRE: n has passed contact-form validation
// POST: row inserted with status 'new'; returned record carries the
// backend-generated id and timestamps
func (s *postgresStore) Save(ctx context.Context, n domain.NewSubmission) (domain.Submission, error) {
	row := s.writeDB.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (first_name, last_name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+submissionColumns,
		n.FirstName, n.LastName, n.Email, n.Phone, n.Message, domain.StatusNew,
	)
	sub, err := scanSubmission(row)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("submission save: %w", err)
	}
	return sub, nil
}

// ListAll returns all submissions, newest first.
// POST: results ordered by submitted_at descending
func (s *postgresStore) ListAll(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.adminDB.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM contact_submissions
		ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("submission list: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submission list scan: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submission list rows: %w", err)
	}
	return subs, nil
}

// GetByID retrieves one submission through the elevated tier.
// PRE: id is non-empty
// POST: returns the record or storage.ErrNotFound
func (s *postgresStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.adminDB.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM contact_submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Submission{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("submission get: %w", err)
	}
	return sub, nil
}

// UpdateStatus applies a status transition and touches updated_at.
// PRE: status is a valid lead status
// POST: returns (true, nil) when a row was updated, (false, nil) when the id
// does not exist, and a non-nil error only on backend failure
func (s *postgresStore) UpdateStatus(ctx context.Context, id, status string, notes *string) (bool, error) {
	if !domain.IsValidStatus(status) {
		return false, domain.ErrInvalidStatus
	}

	var res sql.Result
	var err error
	if notes != nil {
		res, err = s.adminDB.ExecContext(ctx, `
			UPDATE contact_submissions
			SET status = $1, notes = $2, updated_at = now()
			WHERE id = $3`, status, *notes, id)
	} else {
		res, err = s.adminDB.ExecContext(ctx, `
			UPDATE contact_submissions
			SET status = $1, updated_at = now()
			WHERE id = $2`, status, id)
	}
	if err != nil {
		return false, fmt.Errorf("submission update status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submission update rows affected: %w", err)
	}
	return n > 0, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (domain.Submission, error) {
	var sub domain.Submission
	err := row.Scan(
		&sub.ID,
		&sub.FirstName,
		&sub.LastName,
		&sub.Email,
		&sub.Phone,
		&sub.Message,
		&sub.Status,
		&sub.Notes,
		&sub.SubmittedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}
