package handler

import (
	"errors"
	"net/http"
	"strings"

	"platformone/internal/service"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	service service.AssistantService
}

func NewAssistantHandler(service service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("assistant", h.HandleMessage)
	}
}

type AssistantRequest struct {
	Message  string `json:"message"`
	Timezone string `json:"timezone"`
}

func (h *AssistantHandler) HandleMessage(c *gin.Context) {
	var req AssistantRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	resp, err := h.service.HandleMessage(c, req.Message, req.Timezone)
	if err != nil {
		h.handleError(c, err, "HandleMessage")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssistantHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrMissingAPIKey:
		log.Error("Assistant is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is not configured"})
	case errors.Is(err, apperrors.ErrUpstream), errors.Is(err, apperrors.ErrUpstreamDecode):
		log.Error("Assistant upstream failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
