package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"loginservice/internal/domain/entity"
	domainerrors "loginservice/internal/domain/errors"
	"loginservice/internal/domain/repository"
	"loginservice/internal/errors"
	"loginservice/internal/infra/auth"
	mockrepository "loginservice/internal/mocks/repository"
	mockservice "loginservice/internal/mocks/service"
	"loginservice/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authServiceMocks struct {
	driverRepo   *mockrepository.MockDriverRepository
	hasher       *mockservice.MockPasswordHasher
	tokenService *mockservice.MockTokenService
}

func newTestAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	mocks := &authServiceMocks{
		driverRepo:   mockrepository.NewMockDriverRepository(t),
		hasher:       mockservice.NewMockPasswordHasher(t),
		tokenService: mockservice.NewMockTokenService(t),
	}

	svc := NewAuthService(AuthServiceParams{
		DriverRepo:   mocks.driverRepo,
		Hasher:       mocks.hasher,
		TokenService: mocks.tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, mocks
}

func testDriver() *entity.Driver {
	now := time.Now().UTC()

	return &entity.Driver{
		ID:                uuid.New(),
		Username:          "driver-1",
		PasswordHash:      "$2a$10$existinghash",
		PasswordRotatedAt: entity.RotationMarkerInitial,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates driver and issues token", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(nil, repository.ErrDriverNotFound).Once()
		mocks.hasher.EXPECT().Hash("secret-password").
			Return("$2a$10$newhash", nil).Once()

		var inserted *entity.Driver
		mocks.driverRepo.EXPECT().Insert(ctx, mock.AnythingOfType("*entity.Driver")).
			Run(func(_ context.Context, driver *entity.Driver) {
				inserted = driver
			}).Return(nil).Once()
		mocks.tokenService.EXPECT().Issue(mock.AnythingOfType("uuid.UUID"), "driver-1").
			Return("signed-token", nil).Once()

		out, err := svc.Register(ctx, &usecase.RegisterInput{Username: "driver-1", Password: "secret-password"})
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, "signed-token", out.Token)

		require.NotNil(t, inserted)
		assert.NotEqual(t, uuid.Nil, inserted.ID)
		assert.Equal(t, "driver-1", inserted.Username)
		assert.Equal(t, "$2a$10$newhash", inserted.PasswordHash)
		assert.Equal(t, entity.RotationMarkerInitial, inserted.PasswordRotatedAt)
		assert.Equal(t, inserted, out.Driver)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(testDriver(), nil).Once()

		out, err := svc.Register(ctx, &usecase.RegisterInput{Username: "driver-1", Password: "secret-password"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrDriverAlreadyExists)
	})

	t.Run("rejects username taken by a racing insert", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(nil, repository.ErrDriverNotFound).Once()
		mocks.hasher.EXPECT().Hash("secret-password").
			Return("$2a$10$newhash", nil).Once()
		mocks.driverRepo.EXPECT().Insert(ctx, mock.AnythingOfType("*entity.Driver")).
			Return(repository.ErrDuplicateUsername).Once()

		out, err := svc.Register(ctx, &usecase.RegisterInput{Username: "driver-1", Password: "secret-password"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrDriverAlreadyExists)
	})

	t.Run("converts store failures", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		storeErr := errors.New("connection refused")
		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(nil, storeErr).Once()

		out, err := svc.Register(ctx, &usecase.RegisterInput{Username: "driver-1", Password: "secret-password"})
		assert.Nil(t, out)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("does not issue token when hashing fails", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(nil, repository.ErrDriverNotFound).Once()
		mocks.hasher.EXPECT().Hash("secret-password").
			Return("", errors.New("cost out of range")).Once()

		out, err := svc.Register(ctx, &usecase.RegisterInput{Username: "driver-1", Password: "secret-password"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token for valid credentials", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)
		driver := testDriver()

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(driver, nil).Once()
		mocks.hasher.EXPECT().Check("secret-password", driver.PasswordHash).
			Return(true).Once()
		mocks.tokenService.EXPECT().Issue(driver.ID, "driver-1").
			Return("signed-token", nil).Once()

		out, err := svc.Login(ctx, &usecase.LoginInput{Username: "driver-1", Password: "secret-password"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)
		driver := testDriver()

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "nobody").
			Return(nil, repository.ErrDriverNotFound).Once()
		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(driver, nil).Once()
		mocks.hasher.EXPECT().Check("wrong-password", driver.PasswordHash).
			Return(false).Once()

		_, unknownErr := svc.Login(ctx, &usecase.LoginInput{Username: "nobody", Password: "secret-password"})
		_, wrongErr := svc.Login(ctx, &usecase.LoginInput{Username: "driver-1", Password: "wrong-password"})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("converts store failures", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(nil, errors.New("connection refused")).Once()

		out, err := svc.Login(ctx, &usecase.LoginInput{Username: "driver-1", Password: "secret-password"})
		assert.Nil(t, out)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rehashes and stores rotation marker", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)
		driver := testDriver()

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(driver, nil).Once()
		mocks.hasher.EXPECT().Hash("new-password").
			Return("$2a$10$rotatedhash", nil).Once()

		var storedHash, storedMarker string
		mocks.driverRepo.EXPECT().UpdatePassword(ctx, "driver-1", "$2a$10$rotatedhash", mock.AnythingOfType("string")).
			Run(func(_ context.Context, _, passwordHash, rotatedAt string) {
				storedHash = passwordHash
				storedMarker = rotatedAt
			}).Return(nil).Once()

		err := svc.ChangePassword(ctx, &usecase.ChangePasswordInput{Username: "driver-1", NewPassword: "new-password"})
		require.NoError(t, err)

		// The stored hash must be the rehash, never the plaintext or the old hash.
		assert.Equal(t, "$2a$10$rotatedhash", storedHash)
		assert.NotEqual(t, "new-password", storedHash)
		assert.NotEqual(t, driver.PasswordHash, storedHash)

		// The marker leaves its initial value and records a parseable timestamp.
		assert.NotEqual(t, entity.RotationMarkerInitial, storedMarker)
		rotated, parseErr := time.Parse(time.RFC3339, storedMarker)
		require.NoError(t, parseErr)
		assert.WithinDuration(t, time.Now().UTC(), rotated, time.Minute)
	})

	t.Run("old password stops working after rotation", func(t *testing.T) {
		hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
		driverRepo := mockrepository.NewMockDriverRepository(t)
		tokenService := mockservice.NewMockTokenService(t)

		svc := NewAuthService(AuthServiceParams{
			DriverRepo:   driverRepo,
			Hasher:       hasher,
			TokenService: tokenService,
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		})

		oldHash, err := hasher.Hash("old-password")
		require.NoError(t, err)
		driver := testDriver()
		driver.PasswordHash = oldHash

		var rotatedHash string
		driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(driver, nil).Once()
		driverRepo.EXPECT().UpdatePassword(ctx, "driver-1", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Run(func(_ context.Context, _, passwordHash, _ string) {
				rotatedHash = passwordHash
			}).Return(nil).Once()

		err = svc.ChangePassword(ctx, &usecase.ChangePasswordInput{Username: "driver-1", NewPassword: "new-password"})
		require.NoError(t, err)

		require.NotEmpty(t, rotatedHash)
		assert.False(t, hasher.Check("old-password", rotatedHash))
		assert.True(t, hasher.Check("new-password", rotatedHash))
	})

	t.Run("fails like bad credentials for unknown username", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "nobody").
			Return(nil, repository.ErrDriverNotFound).Once()

		err := svc.ChangePassword(ctx, &usecase.ChangePasswordInput{Username: "nobody", NewPassword: "new-password"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("keeps old hash when hashing fails", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(testDriver(), nil).Once()
		mocks.hasher.EXPECT().Hash("new-password").
			Return("", errors.New("cost out of range")).Once()

		err := svc.ChangePassword(ctx, &usecase.ChangePasswordInput{Username: "driver-1", NewPassword: "new-password"})
		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})

	t.Run("converts store failures on update", func(t *testing.T) {
		svc, mocks := newTestAuthService(t)

		mocks.driverRepo.EXPECT().FindByUsername(ctx, "driver-1").
			Return(testDriver(), nil).Once()
		mocks.hasher.EXPECT().Hash("new-password").
			Return("$2a$10$rotatedhash", nil).Once()
		mocks.driverRepo.EXPECT().UpdatePassword(ctx, "driver-1", "$2a$10$rotatedhash", mock.AnythingOfType("string")).
			Return(errors.New("write timeout")).Once()

		err := svc.ChangePassword(ctx, &usecase.ChangePasswordInput{Username: "driver-1", NewPassword: "new-password"})

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	})
}
