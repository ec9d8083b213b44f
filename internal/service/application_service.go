// Package service implements the application intake operations on top of a
// storage.Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moneymornings/intake/internal/models"
	"github.com/moneymornings/intake/internal/storage"
)

const (
	// DefaultListLimit is applied when a list request does not specify one.
	DefaultListLimit = 100

	// recentWindow is the moving window used by the last-7-days count.
	recentWindow = 7 * 24 * time.Hour
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ListOptions narrows and pages a list operation.
type ListOptions struct {
	// Status, when non-empty, restricts results to an exact status match.
	Status string
	// Limit is the maximum number of records to return. Must be >= 0.
	Limit int
	// Offset is the number of records to skip. Must be >= 0.
	Offset int
}

// ApplicationService validates incoming submissions, assigns identifiers and
// timestamps, and delegates persistence to a storage.Store.
type ApplicationService struct {
	store storage.Store
}

// NewApplicationService creates a new ApplicationService with the given
// storage backend.
func NewApplicationService(store storage.Store) *ApplicationService {
	return &ApplicationService{store: store}
}

// Submit validates the request and persists a new application record.
// On success the created record is returned with its generated ID,
// server-side submission date and "pending" status.
func (s *ApplicationService) Submit(ctx context.Context, req models.SubmitRequest) (*models.Application, error) {
	app := &models.Application{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		BusinessName:    strings.TrimSpace(req.BusinessName),
		FundingAmount:   strings.TrimSpace(req.FundingAmount),
		TimeInBusiness:  strings.TrimSpace(req.TimeInBusiness),
		ServiceInterest: strings.TrimSpace(req.ServiceInterest),
	}

	if err := validateSubmission(app); err != nil {
		return nil, err
	}

	app.ID = uuid.New().String()
	app.SubmissionDate = time.Now().UTC()
	app.Status = models.StatusPending

	if err := s.store.InsertApplication(ctx, app); err != nil {
		slog.Error("Submit failed", "error", err)
		return nil, fmt.Errorf("failed to persist application: %w", err)
	}

	slog.Info("Application submitted", "id", app.ID, "email", app.Email)
	return app, nil
}

func validateSubmission(app *models.Application) error {
	required := []struct {
		field, value string
	}{
		{"first_name", app.FirstName},
		{"last_name", app.LastName},
		{"email", app.Email},
		{"phone", app.Phone},
		{"service_interest", app.ServiceInterest},
	}
	for _, r := range required {
		if r.value == "" {
			return validationErr(r.field, "is required")
		}
	}
	if !emailRegex.MatchString(app.Email) {
		return validationErr("email", "must be a valid email address")
	}
	return nil
}

// List returns applications matching the options, ordered by submission date
// descending with ties in insertion order. An empty result is not an error.
func (s *ApplicationService) List(ctx context.Context, opts ListOptions) ([]models.Application, error) {
	if opts.Limit < 0 {
		return nil, validationErr("limit", "must be >= 0")
	}
	if opts.Offset < 0 {
		return nil, validationErr("offset", "must be >= 0")
	}

	apps, err := s.store.ListApplications(ctx, storage.Filter{Status: opts.Status}, opts.Limit, opts.Offset)
	if err != nil {
		slog.Error("List failed", "error", err)
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// Get returns the application with the given ID, or storage.ErrNotFound.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("Get failed", "id", id, "error", err)
		}
		return nil, err
	}
	return app, nil
}

// Update merges the non-nil patch fields into the existing record and
// returns the merged record. An empty patch is rejected before the record is
// looked up, so it fails the same way for unknown IDs.
func (s *ApplicationService) Update(ctx context.Context, id string, patch models.Patch) (*models.Application, error) {
	if patch.IsEmpty() {
		return nil, validationErr("", "update patch must supply at least one field")
	}

	matched, err := s.store.UpdateApplicationFields(ctx, id, storage.Fields{
		Status: patch.Status,
		Notes:  patch.Notes,
	})
	if err != nil {
		slog.Error("Update failed", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if matched == 0 {
		return nil, storage.ErrNotFound
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		slog.Error("Update readback failed", "id", id, "error", err)
		return nil, err
	}

	slog.Info("Application updated", "id", id)
	return app, nil
}

// Stats computes the five summary counts against the current store state.
// The counts are independent reads with no transactional guarantee between
// them; the recent count uses a moving 7-day window from server now.
func (s *ApplicationService) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}

	counts := []struct {
		status string
		dest   *int64
	}{
		{"", &stats.TotalApplications},
		{"pending", &stats.Pending},
		{"qualified", &stats.Qualified},
		{"approved", &stats.Approved},
	}
	for _, c := range counts {
		n, err := s.store.CountApplications(ctx, storage.Filter{Status: c.status})
		if err != nil {
			slog.Error("Stats failed", "status", c.status, "error", err)
			return nil, fmt.Errorf("failed to count applications: %w", err)
		}
		*c.dest = n
	}

	cutoff := time.Now().UTC().Add(-recentWindow)
	recent, err := s.store.CountSince(ctx, cutoff)
	if err != nil {
		slog.Error("Stats failed", "error", err)
		return nil, fmt.Errorf("failed to count recent applications: %w", err)
	}
	stats.LastSevenDays = recent

	return stats, nil
}
