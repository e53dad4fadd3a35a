// Package auth issues and verifies HMAC-signed session tokens and hashes
// passwords with bcrypt. Tokens are self-contained: verification needs only
// the signing secret and a clock.
package auth
