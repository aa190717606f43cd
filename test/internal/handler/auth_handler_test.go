package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"platformone/internal/handler"
	"platformone/internal/model"
	"platformone/test/internal/mocks/services"

	apperrors "platformone/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthTestRouter(mockService *services.UserServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authHandler := handler.NewAuthHandler(mockService)
	authHandler.RegisterRoutes(router)

	return router
}

func TestLoginHandler(t *testing.T) {
	validRequest := handler.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret",
		Role:     "PARTICIPANT",
	}

	t.Run("Success", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		userID := uuid.New()
		mockService.On("Login", mock.Anything, "alice@example.com", "secret", model.RoleParticipant, "").
			Return(&model.LoginResult{
				Success:  true,
				Token:    "token-123",
				User:     model.LoginUser{ID: userID, Email: "alice@example.com", Name: "Alice"},
				UserRole: model.RoleParticipant,
			}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", validRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result model.LoginResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, "token-123", result.Token)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - invalid credentials", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		mockService.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidCredentials).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", validRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - invalid access code", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		mockService.On("Login", mock.Anything, mock.Anything, mock.Anything, model.RoleStaff, "999999").
			Return(nil, apperrors.ErrInvalidAccessCode).Once()

		staffReq := validRequest
		staffReq.Role = "STAFF"
		staffReq.AccessCode = "999999"

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", staffReq)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - wrong portal", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		mockService.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrUnauthorizedRole).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", validRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - invalid role value", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		badReq := validRequest
		badReq.Role = "WIZARD"

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", badReq)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Login")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := services.NewUserServiceMock()
		router := setupAuthTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/auth/login", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Login")
	})
}
