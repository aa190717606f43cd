package handler

import (
	"net/http"
	"time"

	"platformone/internal/model"
	"platformone/internal/service"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:uuid", h.GetByID)
		router.POST("events", h.Create)
		router.PUT("events/:uuid", h.Replace)
		router.DELETE("events/:uuid", h.Delete)
		router.GET("events/:uuid/attendees", h.Attendees)
	}
}

type QuestionRequest struct {
	Text       string   `json:"text" binding:"required"`
	Type       string   `json:"type" binding:"required"`
	Options    []string `json:"options"`
	TargetRole string   `json:"targetRole" binding:"required"`
}

type CreateEventRequest struct {
	Name                string            `json:"name" binding:"required"`
	Start               time.Time         `json:"start" binding:"required"`
	End                 time.Time         `json:"end" binding:"required"`
	Location            string            `json:"location" binding:"required"`
	MinTier             string            `json:"minTier" binding:"required"`
	ParticipantCapacity int               `json:"participantCapacity" binding:"required"`
	VolunteerCapacity   int               `json:"volunteerCapacity" binding:"required"`
	Questions           []QuestionRequest `json:"questions"`
}

type ReplaceEventRequest struct {
	Name                string             `json:"name" binding:"required"`
	Start               time.Time          `json:"start" binding:"required"`
	End                 time.Time          `json:"end" binding:"required"`
	Location            string             `json:"location" binding:"required"`
	MinTier             string             `json:"minTier" binding:"required"`
	ParticipantCapacity int                `json:"participantCapacity" binding:"required"`
	VolunteerCapacity   int                `json:"volunteerCapacity" binding:"required"`
	Questions           *[]QuestionRequest `json:"questions"`
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	// questions are filtered to the viewer's portal role
	viewerRole := model.RoleParticipant
	if raw := c.Query("userRole"); raw != "" {
		role, ok := model.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		viewerRole = role
	}

	event, err := h.service.GetByID(c, eventID, &viewerRole)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	minTier, ok := model.ParseTier(req.MinTier)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minTier"})
		return
	}
	questions, ok := buildQuestions(req.Questions)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question targetRole"})
		return
	}

	params := model.CreateEventParams{
		Name:                req.Name,
		Start:               req.Start,
		End:                 req.End,
		Location:            req.Location,
		MinTier:             minTier,
		ParticipantCapacity: req.ParticipantCapacity,
		VolunteerCapacity:   req.VolunteerCapacity,
		Questions:           questions,
	}

	created, err := h.service.Create(c, params)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Replace(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	var req ReplaceEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	minTier, ok := model.ParseTier(req.MinTier)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minTier"})
		return
	}

	params := model.ReplaceEventParams{
		Name:                req.Name,
		Start:               req.Start,
		End:                 req.End,
		Location:            req.Location,
		MinTier:             minTier,
		ParticipantCapacity: req.ParticipantCapacity,
		VolunteerCapacity:   req.VolunteerCapacity,
	}
	if req.Questions != nil {
		questions, ok := buildQuestions(*req.Questions)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question targetRole"})
			return
		}
		params.Questions = &questions
	}

	updated, err := h.service.Replace(c, eventID, params)
	if err != nil {
		h.handleError(c, err, "Replace")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	if err := h.service.Delete(c, eventID); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *EventHandler) Attendees(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	attendees, err := h.service.Attendees(c, eventID)
	if err != nil {
		h.handleError(c, err, "Attendees")
		return
	}
	c.JSON(http.StatusOK, attendees)
}

func buildQuestions(reqs []QuestionRequest) ([]model.Question, bool) {
	questions := make([]model.Question, 0, len(reqs))
	for _, q := range reqs {
		role, ok := model.ParseRole(q.TargetRole)
		if !ok {
			return nil, false
		}
		questions = append(questions, model.Question{
			Text:       q.Text,
			Type:       q.Type,
			Options:    q.Options,
			TargetRole: role,
		})
	}
	return questions, true
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrNoStaffUser:
		log.Warn("No staff user found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No staff user found to own the event"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
