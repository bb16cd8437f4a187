// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RotationMarkerInitial is the marker value stamped on a freshly registered
// driver, before any password rotation has happened.
const RotationMarkerInitial = "start"

// Driver is the principal being authenticated: a named account identified by
// a username and backed by a bcrypt password hash. The plaintext password
// never appears on this type.
type Driver struct {
	ID           uuid.UUID // Assigned once at registration, immutable afterwards.
	Username     string    // Unique login identifier, immutable after registration.
	PasswordHash string    // bcrypt output; never exposed outward or logged.

	// PasswordRotatedAt is an opaque marker mutated on every password change.
	// It records when the credential was last rotated so a future validation
	// step can compare token issuance time against it; nothing reads it yet.
	PasswordRotatedAt string

	CreatedAt time.Time
	UpdatedAt time.Time
}
