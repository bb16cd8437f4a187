package cassandra

import (
	"context"
	"time"

	"loginservice/internal/domain/entity"
	"loginservice/internal/domain/repository"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	selectDriverStmt = `SELECT id, username, password_hash, password_rotated_at, created_at, updated_at FROM drivers WHERE username = ?`
	insertDriverStmt = `INSERT INTO drivers (id, username, password_hash, password_rotated_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	updateDriverStmt = `UPDATE drivers SET password_hash = ?, password_rotated_at = ?, updated_at = ? WHERE id = ?`
)

// driverRepository implements the repository.DriverRepository interface
// against a Cassandra 'drivers' table. Each operation opens its own session
// and closes it on return; no persistent connection pool is assumed. Query
// failures surface as generic store errors with no automatic retry.
type driverRepository struct {
	cluster *gocql.ClusterConfig
}

// NewDriverRepository is the constructor for driverRepository.
func NewDriverRepository(cluster *gocql.ClusterConfig) repository.DriverRepository {
	return &driverRepository{cluster: cluster}
}

// FindByUsername retrieves a single driver by username.
func (repo *driverRepository) FindByUsername(ctx context.Context, username string) (*entity.Driver, error) {
	session, err := repo.cluster.CreateSession()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to cassandra")
	}
	defer session.Close()

	return findByUsername(ctx, session, username)
}

// Insert persists a new driver. Cassandra enforces no uniqueness on
// username (the table is keyed by id), so the insert is guarded by an
// explicit existence check to preserve the uniqueness invariant.
func (repo *driverRepository) Insert(ctx context.Context, driver *entity.Driver) error {
	session, err := repo.cluster.CreateSession()
	if err != nil {
		return errors.Wrap(err, "failed to connect to cassandra")
	}
	defer session.Close()

	_, err = findByUsername(ctx, session, driver.Username)
	if err == nil {
		return repository.ErrDuplicateUsername
	}
	if !errors.Is(err, repository.ErrDriverNotFound) {
		return err
	}

	err = session.Query(insertDriverStmt,
		gocql.UUID(driver.ID), driver.Username, driver.PasswordHash, driver.PasswordRotatedAt,
		driver.CreatedAt, driver.UpdatedAt).
		WithContext(ctx).
		Exec()
	if err != nil {
		return errors.Wrap(err, "failed to insert driver")
	}

	return nil
}

// UpdatePassword replaces the stored hash and rotation marker for a driver.
// The row is located by username first because the table's partition key is
// the generated id.
func (repo *driverRepository) UpdatePassword(ctx context.Context, username, passwordHash, rotatedAt string) error {
	session, err := repo.cluster.CreateSession()
	if err != nil {
		return errors.Wrap(err, "failed to connect to cassandra")
	}
	defer session.Close()

	driver, err := findByUsername(ctx, session, username)
	if err != nil {
		return err
	}

	err = session.Query(updateDriverStmt, passwordHash, rotatedAt, time.Now().UTC(), gocql.UUID(driver.ID)).
		WithContext(ctx).
		Exec()
	if err != nil {
		return errors.Wrap(err, "failed to update driver password")
	}

	return nil
}

func findByUsername(ctx context.Context, session *gocql.Session, username string) (*entity.Driver, error) {
	var driver entity.Driver
	var id gocql.UUID

	err := session.Query(selectDriverStmt, username).
		WithContext(ctx).
		Scan(&id, &driver.Username, &driver.PasswordHash, &driver.PasswordRotatedAt,
			&driver.CreatedAt, &driver.UpdatedAt)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, repository.ErrDriverNotFound
		}

		return nil, errors.Wrap(err, "failed to find driver by username")
	}

	driver.ID = uuid.UUID(id)

	return &driver, nil
}
