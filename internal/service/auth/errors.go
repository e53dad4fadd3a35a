package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, its signature doesn't
	// match, it uses an unexpected algorithm, or its claims are incomplete.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordTooLong indicates the password exceeds bcrypt's 72 byte input limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
