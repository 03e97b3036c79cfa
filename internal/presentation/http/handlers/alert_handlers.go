package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// AlertHandlers contains the hot-lead alert and action queue handlers
type AlertHandlers struct {
	alertService *services.AlertService
	cacheManager *manager.Manager
	logger       *logging.ChanneledLogger
}

// NewAlertHandlers creates alert handlers with injected dependencies
func NewAlertHandlers(alertService *services.AlertService, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *AlertHandlers {
	return &AlertHandlers{
		alertService: alertService,
		cacheManager: cacheManager,
		logger:       logger,
	}
}

// GetAlerts handles GET /api/v1/alerts
func (h *AlertHandlers) GetAlerts(c *gin.Context) {
	// alert contents are mutated by the read/actioned marks, so
	// serialization happens under the registry read lock
	h.cacheManager.View(func() {
		c.JSON(http.StatusOK, gin.H{
			"alerts": h.cacheManager.Alerts.AllAlerts(),
			"unread": h.cacheManager.Alerts.UnreadCount(),
		})
	})
}

// GetUnreadCount handles GET /api/v1/alerts/unread
func (h *AlertHandlers) GetUnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"unread": h.cacheManager.Alerts.UnreadCount()})
}

// PostAlertRead handles POST /api/v1/alerts/:id/read
func (h *AlertHandlers) PostAlertRead(c *gin.Context) {
	if err := h.alertService.MarkRead(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// PostAlertActioned handles POST /api/v1/alerts/:id/actioned
func (h *AlertHandlers) PostAlertActioned(c *gin.Context) {
	if err := h.alertService.MarkActioned(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "actioned"})
}

// GetActionItems handles GET /api/v1/actions
func (h *AlertHandlers) GetActionItems(c *gin.Context) {
	h.cacheManager.View(func() {
		if visitorID := c.Query("visitorId"); visitorID != "" {
			c.JSON(http.StatusOK, gin.H{"actions": h.cacheManager.Alerts.ActionItemsForVisitor(visitorID)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"actions": h.cacheManager.Alerts.AllActionItems()})
	})
}

type actionTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// PostActionTransition handles POST /api/v1/actions/:id/status
func (h *AlertHandlers) PostActionTransition(c *gin.Context) {
	var req actionTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.alertService.TransitionAction(c.Param("id"), intel.ActionStatus(req.Status), time.Now().UTC())
	if err != nil {
		status := http.StatusUnprocessableEntity
		if _, found := h.cacheManager.Alerts.GetActionItem(c.Param("id")); !found {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}
