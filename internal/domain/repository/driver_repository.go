// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"loginservice/internal/domain/entity"
)

// ErrDriverNotFound is returned when no driver exists for a username.
// "Not found" is a normal outcome of a lookup, not an exceptional one.
var ErrDriverNotFound = errors.New("driver not found")

// ErrDuplicateUsername is returned when an insert would violate the
// username uniqueness invariant.
var ErrDuplicateUsername = errors.New("username already taken")

// DriverRepository defines the standard operations for credential persistence.
// Two interchangeable adapters implement it (PostgreSQL and Cassandra); the
// application layer depends on this interface, never on a concrete backend.
type DriverRepository interface {
	// FindByUsername retrieves a single driver by username.
	// Returns ErrDriverNotFound when no such driver exists.
	FindByUsername(ctx context.Context, username string) (*entity.Driver, error)

	// Insert persists a new driver. The ID and rotation marker must already be
	// set by the caller. Returns ErrDuplicateUsername if the username is taken.
	Insert(ctx context.Context, driver *entity.Driver) error

	// UpdatePassword replaces the stored hash and rotation marker for the
	// driver with the given username. Returns ErrDriverNotFound when absent.
	UpdatePassword(ctx context.Context, username, passwordHash, rotatedAt string) error
}
