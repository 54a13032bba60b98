// Package service declares the collaborators the ledger use cases call out to:
// credentials, receipts, event publishing and input validation.
package service

import (
	"muthurwa/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password a PasswordHasher accepts.
const MaxPasswordBytes = 72

// PasswordHasher protects the passwords vendors and admins log in with.
type PasswordHasher interface {
	// Hash returns the salted hash stored on the identity.
	Hash(password string) (string, error)

	// Check reports whether password matches a stored hash.
	Check(password, hash string) bool
}

// Claims defines the custom claims carried by an access token.
type Claims struct {
	IdentityID uuid.UUID   `json:"uid"`
	Role       entity.Role `json:"role"`
	Name       string      `json:"name"`
	jwt.RegisteredClaims
}

// Caller converts the claims into the request caller.
func (c *Claims) Caller() entity.Caller {
	return entity.Caller{
		IdentityID:  c.IdentityID,
		Role:        c.Role,
		DisplayName: c.Name,
	}
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	// IssueToken creates a signed access token for the identity.
	IssueToken(identity *entity.Identity) (string, error)

	// ValidateToken verifies signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
}
