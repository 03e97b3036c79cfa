package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandlers contains the dashboard and activity feed handlers
type AnalyticsHandlers struct {
	dashboardService *services.DashboardService
	activityService  *services.ActivityService
	cacheManager     *manager.Manager
	perfTracker      *performance.Tracker
	logger           *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies
func NewAnalyticsHandlers(
	dashboardService *services.DashboardService,
	activityService *services.ActivityService,
	cacheManager *manager.Manager,
	perfTracker *performance.Tracker,
	logger *logging.ChanneledLogger,
) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		dashboardService: dashboardService,
		activityService:  activityService,
		cacheManager:     cacheManager,
		perfTracker:      perfTracker,
		logger:           logger,
	}
}

// HandleDashboard handles GET /api/v1/analytics/dashboard
func (h *AnalyticsHandlers) HandleDashboard(c *gin.Context) {
	start := time.Now()
	h.logger.Analytics().Debug("Received dashboard request", "method", c.Request.Method, "path", c.Request.URL.Path)

	snapshot, etag := h.dashboardService.Snapshot(time.Now().UTC())

	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}

	h.logger.Analytics().Info("Dashboard request completed", "duration", time.Since(start))
	c.Header("ETag", etag)
	c.JSON(http.StatusOK, gin.H{"dashboard": snapshot})
}

// HandleActivityFeed handles GET /api/v1/analytics/activity
func (h *AnalyticsHandlers) HandleActivityFeed(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"activity": h.activityService.Recent(limit)})
}

// HandleRegistrySummary handles GET /api/v1/analytics/registries
func (h *AnalyticsHandlers) HandleRegistrySummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.cacheManager.Summary())
}

// HandlePerformanceStats handles GET /api/v1/analytics/performance
func (h *AnalyticsHandlers) HandlePerformanceStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uptime":     h.perfTracker.Uptime().String(),
		"operations": h.perfTracker.Stats(),
	})
}
