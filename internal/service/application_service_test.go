package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/moneymornings/intake/internal/models"
	"github.com/moneymornings/intake/internal/storage"
	"github.com/moneymornings/intake/internal/storage/sqlite"
)

func newTestService(t *testing.T) *ApplicationService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "intake-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewApplicationService(store)
}

func validSubmitRequest() models.SubmitRequest {
	return models.SubmitRequest{
		FirstName:       "Jordan",
		LastName:        "Lee",
		Email:           "jordan.lee@example.com",
		Phone:           "555-0142",
		ServiceInterest: "business-funding",
	}
}

func TestSubmitThenGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := validSubmitRequest()
	req.BusinessName = "Lee Logistics"
	req.FundingAmount = "75000"

	created, err := svc.Submit(ctx, req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.Status != models.StatusPending {
		t.Errorf("status: got %s, want pending", created.Status)
	}
	if created.SubmissionDate.IsZero() {
		t.Error("expected submission date to be set")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, created)
	}
}

func TestSubmitTrimsWhitespace(t *testing.T) {
	svc := newTestService(t)

	req := validSubmitRequest()
	req.FirstName = "  Jordan  "
	req.Email = " jordan.lee@example.com "

	created, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if created.FirstName != "Jordan" {
		t.Errorf("first name: got %q, want %q", created.FirstName, "Jordan")
	}
	if created.Email != "jordan.lee@example.com" {
		t.Errorf("email: got %q", created.Email)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.SubmitRequest)
	}{
		{"missing first name", func(r *models.SubmitRequest) { r.FirstName = "" }},
		{"whitespace last name", func(r *models.SubmitRequest) { r.LastName = "   " }},
		{"missing email", func(r *models.SubmitRequest) { r.Email = "" }},
		{"malformed email", func(r *models.SubmitRequest) { r.Email = "not-an-email" }},
		{"email without domain", func(r *models.SubmitRequest) { r.Email = "user@" }},
		{"missing phone", func(r *models.SubmitRequest) { r.Phone = "" }},
		{"missing service interest", func(r *models.SubmitRequest) { r.ServiceInterest = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmitRequest()
			tt.mutate(&req)

			_, err := svc.Submit(ctx, req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	// Failed submissions must write nothing.
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalApplications != 0 {
		t.Errorf("expected empty store after failed submissions, got %d records", stats.TotalApplications)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "no-such-id")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmitRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	first, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive gets differ:\n%+v\n%+v", first, second)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch rejected regardless of id", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Submit(ctx, validSubmitRequest())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		for _, id := range []string{created.ID, "no-such-id"} {
			_, err := svc.Update(ctx, id, models.Patch{})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("id %s: expected ValidationError, got %v", id, err)
			}
		}
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc := newTestService(t)

		status := "approved"
		_, err := svc.Update(ctx, "no-such-id", models.Patch{Status: &status})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("status update preserves all other fields", func(t *testing.T) {
		svc := newTestService(t)

		req := validSubmitRequest()
		req.BusinessName = "Lee Logistics"
		created, err := svc.Submit(ctx, req)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		approved := "approved"
		updated, err := svc.Update(ctx, created.ID, models.Patch{Status: &approved})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		if updated.Status != "approved" {
			t.Errorf("status: got %s, want approved", updated.Status)
		}
		want := *created
		want.Status = "approved"
		if !reflect.DeepEqual(*updated, want) {
			t.Errorf("unexpected field changes:\n got %+v\nwant %+v", *updated, want)
		}
	})

	t.Run("notes update leaves status alone", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Submit(ctx, validSubmitRequest())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		notes := "left voicemail"
		updated, err := svc.Update(ctx, created.ID, models.Patch{Notes: &notes})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Notes != notes {
			t.Errorf("notes: got %q, want %q", updated.Notes, notes)
		}
		if updated.Status != models.StatusPending {
			t.Errorf("status: got %s, want pending", updated.Status)
		}
	})

	t.Run("any status string is accepted", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Submit(ctx, validSubmitRequest())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		odd := "on-hold until Q3"
		updated, err := svc.Update(ctx, created.ID, models.Patch{Status: &odd})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Status != odd {
			t.Errorf("status: got %q, want %q", updated.Status, odd)
		}
	})
}

func TestListOrderingAndFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := svc.Submit(ctx, validSubmitRequest())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		ids = append(ids, created.ID)
		time.Sleep(2 * time.Millisecond) // distinct submission timestamps
	}

	t.Run("most recent first", func(t *testing.T) {
		apps, err := svc.List(ctx, ListOptions{Limit: DefaultListLimit})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(apps) != 3 {
			t.Fatalf("expected 3 applications, got %d", len(apps))
		}
		for i, want := range []string{ids[2], ids[1], ids[0]} {
			if apps[i].ID != want {
				t.Errorf("position %d: got %s, want %s", i, apps[i].ID, want)
			}
		}
	})

	t.Run("exact status filter", func(t *testing.T) {
		qualified := "qualified"
		if _, err := svc.Update(ctx, ids[1], models.Patch{Status: &qualified}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		apps, err := svc.List(ctx, ListOptions{Status: "qualified", Limit: DefaultListLimit})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(apps) != 1 || apps[0].ID != ids[1] {
			t.Fatalf("expected exactly [%s], got %d records", ids[1], len(apps))
		}

		// Case-sensitive: "Qualified" matches nothing.
		apps, err = svc.List(ctx, ListOptions{Status: "Qualified", Limit: DefaultListLimit})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(apps) != 0 {
			t.Errorf("expected no matches for mismatched case, got %d", len(apps))
		}
	})

	t.Run("negative limit and offset rejected", func(t *testing.T) {
		for _, opts := range []ListOptions{{Limit: -1}, {Limit: 10, Offset: -1}} {
			_, err := svc.List(ctx, opts)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("opts %+v: expected ValidationError, got %v", opts, err)
			}
		}
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		apps, err := svc.List(ctx, ListOptions{Status: "rejected", Limit: DefaultListLimit})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(apps) != 0 {
			t.Errorf("expected empty result, got %d", len(apps))
		}
	})
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	statuses := []string{"pending", "qualified", "qualified", "approved", "rejected"}
	var ids []string
	for range statuses {
		created, err := svc.Submit(ctx, validSubmitRequest())
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		ids = append(ids, created.ID)
	}
	for i, status := range statuses {
		if status == models.StatusPending {
			continue
		}
		s := status
		if _, err := svc.Update(ctx, ids[i], models.Patch{Status: &s}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalApplications != 5 {
		t.Errorf("total: got %d, want 5", stats.TotalApplications)
	}
	if stats.Pending != 1 {
		t.Errorf("pending: got %d, want 1", stats.Pending)
	}
	if stats.Qualified != 2 {
		t.Errorf("qualified: got %d, want 2", stats.Qualified)
	}
	if stats.Approved != 1 {
		t.Errorf("approved: got %d, want 1", stats.Approved)
	}
	// All submissions just happened, so they all fall inside the window.
	if stats.LastSevenDays != 5 {
		t.Errorf("last 7 days: got %d, want 5", stats.LastSevenDays)
	}
}
