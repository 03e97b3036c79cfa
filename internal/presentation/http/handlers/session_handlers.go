// Package handlers provides HTTP handlers for the intelligence API
package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// SessionHandlers contains the session lifecycle HTTP handlers
type SessionHandlers struct {
	sessionService *services.SessionService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewSessionHandlers creates session handlers with injected dependencies
func NewSessionHandlers(sessionService *services.SessionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionHandlers {
	return &SessionHandlers{
		sessionService: sessionService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

type startSessionRequest struct {
	SessionID   string `json:"sessionId"`
	VisitorID   string `json:"visitorId" binding:"required"`
	DeviceClass string `json:"deviceClass"`
	Referrer    string `json:"referrer"`
}

// PostSession handles POST /api/v1/sessions
func (h *SessionHandlers) PostSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("start_session_request")
	defer marker.Complete()

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.StartSession(req.SessionID, req.VisitorID, intel.SessionMeta{
		DeviceClass: req.DeviceClass,
		Referrer:    req.Referrer,
	}, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, session)
}

type logMessageRequest struct {
	Role string `json:"role" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// PostMessage handles POST /api/v1/sessions/:id/messages
func (h *SessionHandlers) PostMessage(c *gin.Context) {
	marker := h.perfTracker.StartOperation("log_message_request")
	defer marker.Complete()

	var req logMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.LogMessage(c.Param("id"), intel.MessageRole(req.Role), req.Text, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"messages":  len(session.Messages),
		"analysis":  session.Analysis,
	})
}

// PostEndSession handles POST /api/v1/sessions/:id/end
func (h *SessionHandlers) PostEndSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("end_session_request")
	defer marker.Complete()

	session, err := h.sessionService.EndSession(c.Param("id"), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandlers) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

type interactionRequest struct {
	Type          string             `json:"type" binding:"required"`
	SessionID     string             `json:"sessionId" binding:"required"`
	VisitorID     string             `json:"visitorId" binding:"required"`
	PlaceID       string             `json:"placeId"`
	PlaceName     string             `json:"placeName"`
	PlaceCategory string             `json:"placeCategory"`
	Source        string             `json:"source"`
	Coords        *intel.Coordinates `json:"coords"`
	DwellSeconds  float64            `json:"dwellSeconds"`
}

// PostInteraction handles POST /api/v1/interactions
func (h *SessionHandlers) PostInteraction(c *gin.Context) {
	marker := h.perfTracker.StartOperation("record_interaction_request")
	defer marker.Complete()

	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.sessionService.RecordInteraction(intel.InteractionEvent{
		Type:          intel.InteractionType(req.Type),
		SessionID:     req.SessionID,
		VisitorID:     req.VisitorID,
		PlaceID:       req.PlaceID,
		PlaceName:     req.PlaceName,
		PlaceCategory: req.PlaceCategory,
		Source:        req.Source,
		Coords:        req.Coords,
		DwellSeconds:  req.DwellSeconds,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, event)
}
