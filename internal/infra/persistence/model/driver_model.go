// Package model holds the GORM persistence models, kept separate from the
// pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DriverModel mirrors the 'drivers' table. The unique index on username is
// the store-level guarantee behind the uniqueness invariant: under a racing
// double registration the database accepts at most one row.
type DriverModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	Username          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	PasswordRotatedAt string    `gorm:"type:varchar(64);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (DriverModel) TableName() string {
	return "drivers"
}
