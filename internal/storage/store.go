// Package storage provides abstractions for persistent application storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/moneymornings/intake/internal/models"
)

// ErrNotFound is returned when no application matches the requested ID.
var ErrNotFound = errors.New("application not found")

// Filter narrows list and count operations to records matching an exact
// value for a single field. The zero value matches every record.
type Filter struct {
	// Status, when non-empty, matches records whose status equals it exactly
	// (case-sensitive).
	Status string
}

// Fields holds the mutable fields of a partial update. Nil pointers are
// left untouched by UpdateApplicationFields.
type Fields struct {
	Status *string
	Notes  *string
}

// Store defines the interface for application storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// InsertApplication persists a new application record.
	// The caller is responsible for assigning ID and SubmissionDate.
	InsertApplication(ctx context.Context, app *models.Application) error

	// GetApplication retrieves an application by its ID.
	// Returns ErrNotFound if no record matches.
	GetApplication(ctx context.Context, id string) (*models.Application, error)

	// ListApplications returns records matching the filter, ordered by
	// submission date descending with ties broken by insertion order.
	// The result is materialized at call time; an empty slice is not an error.
	ListApplications(ctx context.Context, filter Filter, limit, offset int) ([]models.Application, error)

	// UpdateApplicationFields merges the supplied non-nil fields into the
	// record with the given ID and returns the number of matched records
	// (0 or 1, since IDs are unique).
	UpdateApplicationFields(ctx context.Context, id string, fields Fields) (int64, error)

	// CountApplications returns the number of records matching the filter.
	CountApplications(ctx context.Context, filter Filter) (int64, error)

	// CountSince returns the number of records whose submission date is at
	// or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
