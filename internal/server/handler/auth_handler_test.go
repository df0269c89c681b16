package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/busshop-tracker/internal/domain/user"
	"github.com/busshop-tracker/internal/server/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, name, pin string) (*user.User, error) {
	args := m.Called(ctx, name, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, name, role string) (*user.User, error) {
	args := m.Called(ctx, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) RenameUser(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockUserService) ResetPIN(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUserService) EnsureDefaultUsers(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		expectedUser := &user.User{
			ID:   uuid.New(),
			Name: "Angel Ramos",
			PIN:  "1001",
			Role: user.RoleMechanic,
		}
		mockService.On("Login", mock.Anything, "Angel Ramos", "1001").Return(expectedUser, nil)

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Name: "Angel Ramos", PIN: "1001"})
		req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		err := json.Unmarshal(rr.Body.Bytes(), &topLevelResponse)
		assert.NoError(t, err)
		require.NotNil(t, topLevelResponse.Data)

		var responseBody UserResponse
		dataBytes, marshalErr := json.Marshal(topLevelResponse.Data)
		require.NoError(t, marshalErr)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		assert.Equal(t, expectedUser.ID.String(), responseBody.ID)
		assert.Equal(t, "Angel Ramos", responseBody.Name)
		assert.Equal(t, user.RoleMechanic, responseBody.Role)
		assert.True(t, responseBody.PINSet)

		mockService.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"pin":"1001"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("PINNotFourDigits", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		for _, pin := range []string{"123", "12345", "12a4", ""} {
			jsonBody, _ := json.Marshal(LoginRequest{Name: "Angel Ramos", PIN: pin})
			req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code, "pin %q should be rejected", pin)
		}
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		mockService.On("Login", mock.Anything, "Nobody", "1234").
			Return(nil, user.ErrUserNotFound{Name: "Nobody"})

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Name: "Nobody", PIN: "1234"})
		req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("WrongPIN", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		mockService.On("Login", mock.Anything, "Angel Ramos", "9999").
			Return(nil, user.ErrWrongPIN{Name: "Angel Ramos"})

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Name: "Angel Ramos", PIN: "9999"})
		req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewAuthHandler(logger, mockService)

		mockService.On("Login", mock.Anything, "Angel Ramos", "1001").
			Return(nil, errors.New("database connection lost"))

		router := setupTestRouter()
		router.POST("/api/login", handler.Login)

		jsonBody, _ := json.Marshal(LoginRequest{Name: "Angel Ramos", PIN: "1001"})
		req, _ := http.NewRequest(http.MethodPost, "/api/login", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.UserService = (*MockUserService)(nil)
