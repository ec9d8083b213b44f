package models

import "time"

// Application represents one applicant submission.
// Records are created by the service on submission and mutated only through
// partial updates; there is no delete.
type Application struct {
	// ID is the unique identifier for the application (UUID format).
	// It is assigned at creation and never changes.
	ID string `json:"id"`

	// FirstName and LastName are required and non-empty after trimming.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Email must pass a syntax check; it is not required to be unique.
	Email string `json:"email"`

	// Phone is free-form text with no format validation.
	Phone string `json:"phone"`

	// BusinessName, FundingAmount and TimeInBusiness are optional;
	// an empty string means "not provided".
	BusinessName   string `json:"business_name,omitempty"`
	FundingAmount  string `json:"funding_amount,omitempty"`
	TimeInBusiness string `json:"time_in_business,omitempty"`

	// ServiceInterest is the required service category the applicant selected.
	ServiceInterest string `json:"service_interest"`

	// SubmissionDate is set by the server exactly once, at creation.
	SubmissionDate time.Time `json:"submission_date"`

	// Status is a free-form label defaulting to "pending".
	// Any string is accepted via update; there is no transition graph.
	Status string `json:"status"`

	// Notes is optional free-form text, settable only through update.
	Notes string `json:"notes,omitempty"`
}

// StatusPending is the status assigned to every new application.
const StatusPending = "pending"

// SubmitRequest is the payload for creating an application.
type SubmitRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BusinessName    string `json:"business_name"`
	ServiceInterest string `json:"service_interest"`
	FundingAmount   string `json:"funding_amount"`
	TimeInBusiness  string `json:"time_in_business"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Patch is a partial update applied to an existing application.
// Nil fields are left unchanged; an entirely empty patch is rejected.
type Patch struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil
}

// Stats is the summary returned by the stats operation. All counts are
// computed independently against the store at call time.
type Stats struct {
	TotalApplications int64 `json:"total_applications"`
	Pending           int64 `json:"pending"`
	Qualified         int64 `json:"qualified"`
	Approved          int64 `json:"approved"`
	LastSevenDays     int64 `json:"last_7_days"`
}

// ErrorResponse is the JSON body for error replies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
