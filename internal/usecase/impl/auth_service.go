// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "loginservice/internal/delivery/context"
	"loginservice/internal/domain/entity"
	domainerrors "loginservice/internal/domain/errors"
	"loginservice/internal/domain/repository"
	"loginservice/internal/domain/service"
	"loginservice/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It is stateless and safe
// to share across concurrent requests; all mutable state lives in the store.
type authService struct {
	driverRepo   repository.DriverRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	DriverRepo   repository.DriverRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		driverRepo:   params.DriverRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new driver and issues its first token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting driver registration", slog.String("username", input.Username))

	_, err := srv.driverRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, username taken", slog.String("username", input.Username))

		return nil, domainerrors.ErrDriverAlreadyExists.WrapMessage("driver registration failed")
	}
	if !errors.Is(err, repository.ErrDriverNotFound) {
		return nil, srv.storeError(ctx, err, "failed to look up username during registration")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	now := time.Now().UTC()
	driver := &entity.Driver{
		ID:                uuid.New(),
		Username:          input.Username,
		PasswordHash:      passwordHash,
		PasswordRotatedAt: entity.RotationMarkerInitial,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := srv.driverRepo.Insert(ctx, driver); err != nil {
		// A racing registration for the same username loses here: the store
		// admits at most one row.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			srv.log(ctx).Warn("Registration lost insert race", slog.String("username", input.Username))

			return nil, domainerrors.ErrDriverAlreadyExists.WrapMessage("driver registration failed")
		}

		return nil, srv.storeError(ctx, err, "failed to insert driver during registration")
	}

	// The token is only issued once the store write is acknowledged.
	token, err := srv.tokenService.Issue(driver.ID, driver.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after registration")
	}

	srv.log(ctx).Debug("Driver registered", slog.Any("driverID", driver.ID))

	return &usecase.RegisterOutput{Driver: driver, Token: token}, nil
}

// Login verifies a driver's credentials and issues a token. An unknown
// username and a wrong password produce the same failure so usernames
// cannot be enumerated.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	driver, err := srv.driverRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, srv.storeError(ctx, err, "failed to look up username during login")
	}

	if !srv.hasher.Check(input.Password, driver.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(driver.ID, driver.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after login")
	}

	srv.log(ctx).Debug("Driver logged in", slog.Any("driverID", driver.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

// ChangePassword rotates a driver's password: the stored hash is replaced and
// the rotation marker records when it happened. An unknown username fails the
// same way as bad login credentials.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	driver, err := srv.driverRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			srv.log(ctx).Info("Password change failed", slog.String("username", input.Username))

			return domainerrors.ErrInvalidCredentials.WrapMessage("password change failed")
		}

		return srv.storeError(ctx, err, "failed to look up username during password change")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during password change", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	rotatedAt := time.Now().UTC().Format(time.RFC3339)
	if err := srv.driverRepo.UpdatePassword(ctx, driver.Username, newHash, rotatedAt); err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("password change failed")
		}

		return srv.storeError(ctx, err, "failed to update driver password")
	}

	srv.log(ctx).Debug("Driver password rotated", slog.Any("driverID", driver.ID))

	return nil
}

// storeError logs a backing-store failure with context and converts it into
// the application taxonomy; raw store errors never reach callers above.
func (srv *authService) storeError(ctx context.Context, err error, details string) error {
	srv.log(ctx).Error("Credential store call failed", slog.String("details", details), slog.Any("error", err))

	return domainerrors.NewDatabaseExecuteError(err, details)
}
