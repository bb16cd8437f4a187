// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"loginservice/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new driver.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required for a driver to log in.
type LoginInput struct {
	Username string
	Password string
}

// ChangePasswordInput defines the data required to rotate a driver's password.
type ChangePasswordInput struct {
	Username    string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created driver and its first token.
type RegisterOutput struct {
	Driver *entity.Driver
	Token  string
}

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	Token string
}

// AuthUsecase defines the interface for credential-issuance operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new driver and issues its first token.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies a driver's credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ChangePassword rotates a driver's password and rotation marker.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
}
