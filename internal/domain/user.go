package domain

import (
	"strings"
	"time"
)

// User represents a registered account.
// Username and email are globally unique; the password is only ever held as a bcrypt hash.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the verified (user id, username) pair taken from a session token.
// It is the only value trusted for authorization decisions.
type Identity struct {
	UserID   int64
	Username string
}

// Valid reports whether the identity refers to a persisted user.
func (i Identity) Valid() bool {
	return i.UserID > 0
}

// Credentials holds the raw registration or login input.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// Normalize trims surrounding whitespace from username and email.
// The password is left untouched.
func (c Credentials) Normalize() Credentials {
	return Credentials{
		Username: strings.TrimSpace(c.Username),
		Email:    strings.TrimSpace(c.Email),
		Password: c.Password,
	}
}

// ValidateForRegistration checks that all three fields are present.
func (c Credentials) ValidateForRegistration() error {
	if c.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if c.Email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if c.Password == "" {
		return NewValidationError("password", "is required", nil)
	}
	return nil
}

// ValidateForLogin checks that username and password are present.
func (c Credentials) ValidateForLogin() error {
	if c.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if c.Password == "" {
		return NewValidationError("password", "is required", nil)
	}
	return nil
}
