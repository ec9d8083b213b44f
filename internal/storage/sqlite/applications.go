package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/moneymornings/intake/internal/models"
	"github.com/moneymornings/intake/internal/storage"
)

const applicationColumns = `id, first_name, last_name, email, phone,
	business_name, funding_amount, time_in_business, service_interest,
	submission_date, status, notes`

// InsertApplication persists a new application record.
func (s *SQLiteStore) InsertApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		app.ID,
		app.FirstName,
		app.LastName,
		app.Email,
		app.Phone,
		app.BusinessName,
		app.FundingAmount,
		app.TimeInBusiness,
		app.ServiceInterest,
		app.SubmissionDate.UnixNano(),
		app.Status,
		app.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}

	return nil
}

// GetApplication retrieves an application by ID.
func (s *SQLiteStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// ListApplications returns applications matching the filter, most recent
// first. Ties on submission date keep insertion order.
func (s *SQLiteStore) ListApplications(ctx context.Context, filter storage.Filter, limit, offset int) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY submission_date DESC, rowid ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// UpdateApplicationFields merges the supplied non-nil fields into the record
// and returns the number of matched rows (0 or 1).
func (s *SQLiteStore) UpdateApplicationFields(ctx context.Context, id string, fields storage.Fields) (int64, error) {
	set := ""
	args := []any{}
	if fields.Status != nil {
		set += "status = ?"
		args = append(args, *fields.Status)
	}
	if fields.Notes != nil {
		if set != "" {
			set += ", "
		}
		set += "notes = ?"
		args = append(args, *fields.Notes)
	}
	if set == "" {
		return 0, fmt.Errorf("no fields to update")
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE applications SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update application: %w", err)
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return matched, nil
}

// CountApplications returns the number of records matching the filter.
func (s *SQLiteStore) CountApplications(ctx context.Context, filter storage.Filter) (int64, error) {
	query := `SELECT COUNT(*) FROM applications`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}

// CountSince returns the number of records submitted at or after the cutoff.
func (s *SQLiteStore) CountSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM applications WHERE submission_date >= ?",
		cutoff.UnixNano(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent applications: %w", err)
	}

	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.Application, error) {
	app := &models.Application{}
	var submitted int64
	err := row.Scan(
		&app.ID,
		&app.FirstName,
		&app.LastName,
		&app.Email,
		&app.Phone,
		&app.BusinessName,
		&app.FundingAmount,
		&app.TimeInBusiness,
		&app.ServiceInterest,
		&submitted,
		&app.Status,
		&app.Notes,
	)
	if err != nil {
		return nil, err
	}
	app.SubmissionDate = time.Unix(0, submitted).UTC()
	return app, nil
}
