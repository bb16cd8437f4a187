// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"loginservice/config"
	"loginservice/internal/domain/service"
	"loginservice/internal/errors"
)

// tokenTTL is the fixed validity horizon of every issued token.
const tokenTTL = 30 * 24 * time.Hour

// minSecretLength mirrors the startup check in config; the constructor
// re-validates so a misused service can never sign with a weak key.
const minSecretLength = 16

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte // Symmetric HMAC-SHA-256 signing key, immutable after startup.
	authority string // Stamped as both issuer and audience on every token.
}

// NewJWTService is the constructor for jwtService. An invalid signing key or
// missing authority is a startup error; fx aborts before any Issue call.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if len(cfg.JWT.Secret) < minSecretLength {
		return nil, errors.Errorf("jwt secret must be at least %d characters long", minSecretLength)
	}
	if cfg.JWT.Authority == "" {
		return nil, errors.New("jwt authority must be provided")
	}

	return &jwtService{
		secret:    []byte(cfg.JWT.Secret),
		authority: cfg.JWT.Authority,
	}, nil
}

// Issue builds and signs a token for a verified driver identity.
// Pure apart from reading the clock: no I/O and no failure path under
// normal operation.
func (s *jwtService) Issue(driverID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Username: username,
		DriverID: driverID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.authority,
			Audience:  jwt.ClaimStrings{s.authority},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature, expiry, issuer and audience of a token string.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.authority),
		jwt.WithAudience(s.authority),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}
