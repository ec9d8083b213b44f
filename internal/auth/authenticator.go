// Package auth provides credential verification for the admin surface.
package auth

import "errors"

// ErrInvalidCredentials is returned when a username/password pair does not
// match the configured admin credentials.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator defines the interface for admin credential verification.
// This abstraction allows swapping the mechanism (static credentials, OAuth,
// etc.) without touching the HTTP layer or the application service.
type Authenticator interface {
	// Authenticate verifies the given credentials.
	// Returns ErrInvalidCredentials when they do not match.
	Authenticate(username, password string) error
}
