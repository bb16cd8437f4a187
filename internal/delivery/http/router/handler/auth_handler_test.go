package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loginservice/internal/delivery/http/middleware"
	"loginservice/internal/delivery/http/response"
	"loginservice/internal/delivery/http/router"
	"loginservice/internal/delivery/http/router/handler"
	"loginservice/internal/delivery/http/validator"
	"loginservice/internal/domain/entity"
	domainerrors "loginservice/internal/domain/errors"
	"loginservice/internal/domain/service"
	mockservice "loginservice/internal/mocks/service"
	mockusecase "loginservice/internal/mocks/usecase"
	"loginservice/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerMocks struct {
	uc       *mockusecase.MockAuthUsecase
	tokenSvc *mockservice.MockTokenService
}

func newTestServer(t *testing.T) (*echo.Echo, *handlerMocks) {
	t.Helper()

	mocks := &handlerMocks{
		uc:       mockusecase.NewMockAuthUsecase(t),
		tokenSvc: mockservice.NewMockTokenService(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(mocks.uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(mocks.tokenSvc),
	})
	r.RegisterRoutes(e)

	return e, mocks
}

func doJSON(e *echo.Echo, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with driver and token", func(t *testing.T) {
		e, mocks := newTestServer(t)

		driverID := uuid.New()
		mocks.uc.EXPECT().Register(mock.Anything, &usecase.RegisterInput{
			Username: "driver-1",
			Password: "secret-password",
		}).Return(&usecase.RegisterOutput{
			Driver: &entity.Driver{ID: driverID, Username: "driver-1"},
			Token:  "signed-token",
		}, nil).Once()

		rec := doJSON(e, http.MethodPost, "/register",
			`{"username":"driver-1","password":"secret-password"}`, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)

		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, driverID.String(), data["id"])
		assert.Equal(t, "driver-1", data["username"])
		assert.Equal(t, "signed-token", data["token"])

		// The password hash must never appear in the response.
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("returns 400 for taken username", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().Register(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrDriverAlreadyExists.WrapMessage("driver registration failed")).Once()

		rec := doJSON(e, http.MethodPost, "/register",
			`{"username":"driver-1","password":"secret-password"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.False(t, envelope.Success)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "DRIVER_ALREADY_EXISTS", envelope.Error.Code)
	})

	t.Run("returns 400 for missing fields", func(t *testing.T) {
		e, _ := newTestServer(t)

		rec := doJSON(e, http.MethodPost, "/register", `{"username":"driver-1"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().Login(mock.Anything, &usecase.LoginInput{
			Username: "driver-1",
			Password: "secret-password",
		}).Return(&usecase.LoginOutput{Token: "signed-token"}, nil).Once()

		rec := doJSON(e, http.MethodPost, "/login",
			`{"username":"driver-1","password":"secret-password"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)

		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "signed-token", data["token"])
	})

	t.Run("returns 401 for bad credentials", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().Login(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")).Once()

		rec := doJSON(e, http.MethodPost, "/login",
			`{"username":"driver-1","password":"wrong-password"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
	})

	t.Run("returns 500 envelope without store details", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().Login(mock.Anything, mock.Anything).
			Return(nil, domainerrors.NewDatabaseExecuteError(
				assert.AnError, "lookup failed")).Once()

		rec := doJSON(e, http.MethodPost, "/login",
			`{"username":"driver-1","password":"secret-password"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", envelope.Error.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("returns 200 without token", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().ChangePassword(mock.Anything, &usecase.ChangePasswordInput{
			Username:    "driver-1",
			NewPassword: "new-password",
		}).Return(nil).Once()

		rec := doJSON(e, http.MethodPatch, "/authenticate",
			`{"username":"driver-1","newPassword":"new-password"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)
		assert.Equal(t, "Password updated successfully", envelope.Message)
		assert.Nil(t, envelope.Data)
	})

	t.Run("returns 401 for unknown username", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.uc.EXPECT().ChangePassword(mock.Anything, mock.Anything).
			Return(domainerrors.ErrInvalidCredentials.WrapMessage("password change failed")).Once()

		rec := doJSON(e, http.MethodPatch, "/authenticate",
			`{"username":"nobody","newPassword":"new-password"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns identity for valid bearer token", func(t *testing.T) {
		e, mocks := newTestServer(t)

		driverID := uuid.New()
		mocks.tokenSvc.EXPECT().Validate("signed-token").
			Return(&service.Claims{Username: "driver-1", DriverID: driverID}, nil).Once()

		header := http.Header{}
		header.Set("Authorization", "Bearer signed-token")
		rec := doJSON(e, http.MethodGet, "/me", "", header)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "driver-1", data["username"])
		assert.Equal(t, driverID.String(), data["driverID"])
	})

	t.Run("returns 401 without authorization header", func(t *testing.T) {
		e, _ := newTestServer(t)

		rec := doJSON(e, http.MethodGet, "/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "TOKEN_MISSING", envelope.Error.Code)
	})

	t.Run("returns 401 for rejected token", func(t *testing.T) {
		e, mocks := newTestServer(t)

		mocks.tokenSvc.EXPECT().Validate("bad-token").
			Return(nil, assert.AnError).Once()

		header := http.Header{}
		header.Set("Authorization", "Bearer bad-token")
		rec := doJSON(e, http.MethodGet, "/me", "", header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "TOKEN_INVALID", envelope.Error.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
}
