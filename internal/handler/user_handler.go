package handler

import (
	"net/http"
	"strconv"

	"platformone/internal/model"
	"platformone/internal/service"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("users", h.List)
		router.POST("users", h.Create)
		router.GET("users/attendance", h.Attendance)
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Tier     string `json:"tier"`
}

func (h *UserHandler) List(c *gin.Context) {
	role, ok := parseRoleQuery(c)
	if !ok {
		return
	}

	take := 10
	if raw := c.Query("take"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid take"})
			return
		}
		take = parsed
	}

	users, err := h.service.List(c, role, take)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	tier := model.TierBronze
	if req.Tier != "" {
		tier, ok = model.ParseTier(req.Tier)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier"})
			return
		}
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Tier:     tier,
	}

	created, err := h.service.Create(c, user)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Attendance(c *gin.Context) {
	role, ok := parseRoleQuery(c)
	if !ok {
		return
	}

	attendance, err := h.service.Attendance(c, role)
	if err != nil {
		h.handleError(c, err, "Attendance")
		return
	}
	c.JSON(http.StatusOK, attendance)
}

func parseRoleQuery(c *gin.Context) (*model.Role, bool) {
	raw := c.Query("role")
	if raw == "" {
		return nil, true
	}
	role, ok := model.ParseRole(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return nil, false
	}
	return &role, true
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEmailExists:
		log.Warn("Email already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
