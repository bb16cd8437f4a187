package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the identity facts embedded in every issued token.
type Claims struct {
	Username string    `json:"username"`
	DriverID uuid.UUID `json:"driverID"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// Issuance is a pure function of its inputs plus the process-wide signing key
// and authority established at startup; it performs no I/O.
type TokenService interface {
	// Issue builds and signs a token for a verified driver identity.
	Issue(driverID uuid.UUID, username string) (string, error)

	// Validate checks the signature, expiry, issuer and audience of a token
	// string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
