package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BasicAuthenticator verifies credentials against a single configured
// username/password pair. The password is bcrypt-hashed at construction so
// the plaintext is not kept in memory, and both comparisons run in constant
// time.
type BasicAuthenticator struct {
	usernameSum  [sha256.Size]byte
	passwordHash []byte
}

// NewBasicAuthenticator creates an authenticator for the given admin
// credentials. Both must be non-empty.
func NewBasicAuthenticator(username, password string) (*BasicAuthenticator, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("admin username and password must be configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &BasicAuthenticator{
		usernameSum:  sha256.Sum256([]byte(username)),
		passwordHash: hash,
	}, nil
}

// Authenticate verifies the given credentials in constant time.
func (a *BasicAuthenticator) Authenticate(username, password string) error {
	// Hashing first makes the comparison length-independent.
	userSum := sha256.Sum256([]byte(username))
	userOK := subtle.ConstantTimeCompare(userSum[:], a.usernameSum[:]) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
