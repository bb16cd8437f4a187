package postgres

import (
	"context"

	"loginservice/internal/domain/entity"
	"loginservice/internal/domain/repository"
	"loginservice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// driverRepository implements the repository.DriverRepository interface using GORM.
type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository is the constructor for driverRepository.
// It returns the repository as a repository.DriverRepository interface,
// adhering to dependency inversion.
func NewDriverRepository(db *gorm.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

// FindByUsername retrieves a single driver by username.
func (repo *driverRepository) FindByUsername(ctx context.Context, username string) (*entity.Driver, error) {
	var driverM model.DriverModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&driverM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDriverNotFound
		}

		return nil, errors.Wrap(err, "failed to find driver by username")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toDriverDomain(&driverM), nil
}

// Insert persists a new driver. Uniqueness is enforced by the database's
// unique index on username, so a racing duplicate insert is rejected by the
// store itself rather than silently lost.
func (repo *driverRepository) Insert(ctx context.Context, driver *entity.Driver) error {
	driverM := fromDriverDomain(driver)

	if err := repo.db.WithContext(ctx).Create(driverM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUsername
		}

		return errors.Wrap(err, "failed to insert driver")
	}

	driver.CreatedAt = driverM.CreatedAt
	driver.UpdatedAt = driverM.UpdatedAt

	return nil
}

// UpdatePassword replaces the stored hash and rotation marker for a driver.
func (repo *driverRepository) UpdatePassword(ctx context.Context, username, passwordHash, rotatedAt string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DriverModel{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"password_hash":       passwordHash,
			"password_rotated_at": rotatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update driver password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDriverNotFound
	}

	return nil
}

// toDriverDomain maps a persistence model to the domain entity.
func toDriverDomain(driverM *model.DriverModel) *entity.Driver {
	return &entity.Driver{
		ID:                driverM.ID,
		Username:          driverM.Username,
		PasswordHash:      driverM.PasswordHash,
		PasswordRotatedAt: driverM.PasswordRotatedAt,
		CreatedAt:         driverM.CreatedAt,
		UpdatedAt:         driverM.UpdatedAt,
	}
}

// fromDriverDomain maps the domain entity to a persistence model.
func fromDriverDomain(driver *entity.Driver) *model.DriverModel {
	return &model.DriverModel{
		ID:                driver.ID,
		Username:          driver.Username,
		PasswordHash:      driver.PasswordHash,
		PasswordRotatedAt: driver.PasswordRotatedAt,
		CreatedAt:         driver.CreatedAt,
		UpdatedAt:         driver.UpdatedAt,
	}
}
