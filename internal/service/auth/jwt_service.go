package auth

import (
	"context"
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
)

// JWTService mints and verifies stateless session tokens.
type JWTService interface {
	// GenerateToken creates a signed token asserting the identity.
	// Returns the token string and its expiry instant.
	GenerateToken(ctx context.Context, identity domain.Identity) (string, time.Time, error)

	// ValidateToken checks signature, algorithm and expiry and returns the claims.
	// It never consults storage.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    int64
	Username  string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Identity returns the identity asserted by the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, Username: c.Username}
}
