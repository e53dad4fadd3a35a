// Package domain contains the core business entities of the generator
// operations service: users, the identities derived from their session
// tokens, and the maintenance tasks they own.
package domain
