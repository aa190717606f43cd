package handler

import (
	"net/http"

	"platformone/internal/model"
	"platformone/internal/service"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.UserService
}

func NewAuthHandler(service service.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("auth/login", h.Login)
	}
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required"`
	AccessCode string `json:"accessCode"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	result, err := h.service.Login(c, req.Email, req.Password, role, req.AccessCode)
	if err != nil {
		h.handleError(c, err, "Login")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrInvalidCredentials:
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case err == apperrors.ErrInvalidAccessCode:
		log.Warn("Invalid access code")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid staff access code"})
	case err == apperrors.ErrUnauthorizedRole:
		log.Warn("Role not authorized for portal")
		c.JSON(http.StatusForbidden, gin.H{"error": "Role not authorized for this portal"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
