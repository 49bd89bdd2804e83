package service

import (
	"github.com/google/uuid"
)

// TokenClaims carries the identity extracted from a validated access token.
type TokenClaims struct {
	UserID  uuid.UUID
	Roles   []string
	IsStaff bool
}

// TokenService defines the contract for issuing and validating access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uuid.UUID, roles []string, isStaff bool) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*TokenClaims, error)
}
