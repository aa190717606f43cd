package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"platformone/internal/handler"
	"platformone/internal/model"
	"platformone/test/internal/mocks/services"

	apperrors "platformone/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAssistantTestRouter(mockService *services.AssistantServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	assistantHandler := handler.NewAssistantHandler(mockService)
	assistantHandler.RegisterRoutes(router)

	return router
}

func TestHandleAssistantMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		mockService.On("HandleMessage", mock.Anything, "list events", "Asia/Singapore").
			Return(&model.AssistantResponse{
				Action:           model.ActionList,
				AssistantMessage: "Here are 2 events.",
			}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{
			Message:  "list events",
			Timezone: "Asia/Singapore",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.AssistantResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ActionList, resp.Action)
		assert.Equal(t, "Here are 2 events.", resp.AssistantMessage)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - clarification is still 200", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		mockService.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.AssistantResponse{
				Action:             model.ActionCreate,
				NeedsClarification: true,
				MissingFields:      []string{"endDate", "endTime"},
				AssistantMessage:   "I can create the event once I have: endDate, endTime.",
			}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{Message: "create a tech talk"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.AssistantResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.NeedsClarification)
	})

	t.Run("Failed - empty message", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{Message: "   "})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "HandleMessage")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "HandleMessage")
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		mockService.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrEventNotFound).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{Message: "show event x"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - missing api key", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		mockService.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrMissingAPIKey).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{Message: "list events"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Failed - upstream error message forwarded", func(t *testing.T) {
		mockService := services.NewAssistantServiceMock()
		router := setupAssistantTestRouter(mockService)

		upstreamErr := fmt.Errorf("%w: Resource has been exhausted", apperrors.ErrUpstream)
		mockService.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, upstreamErr).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/assistant", handler.AssistantRequest{Message: "list events"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Resource has been exhausted")
	})
}
