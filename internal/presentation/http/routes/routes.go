// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/container"
	"github.com/AtRiskMedia/wealthstack-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/wealthstack-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	sessionHandlers := handlers.NewSessionHandlers(container.SessionService, container.Logger, container.PerfTracker)
	analyticsHandlers := handlers.NewAnalyticsHandlers(
		container.DashboardService,
		container.ActivityService,
		container.CacheManager,
		container.PerfTracker,
		container.Logger,
	)
	alertHandlers := handlers.NewAlertHandlers(container.AlertService, container.CacheManager, container.Logger)
	exportHandlers := handlers.NewExportHandlers(container.ExportService, container.Logger, container.PerfTracker)
	visitorHandlers := handlers.NewVisitorHandlers(container.CacheManager, container.Logger)
	streamHandlers := handlers.NewStreamHandlers(container.Broadcaster, container.Bus, container.ActivityService, container.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Live feeds sit outside the versioned API group
	r.GET("/ws/activity", streamHandlers.GetActivityWS)

	api := r.Group("/api/v1")
	{
		// Session lifecycle
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandlers.PostSession)
			sessions.GET("/:id", sessionHandlers.GetSession)
			sessions.POST("/:id/messages", sessionHandlers.PostMessage)
			sessions.POST("/:id/end", sessionHandlers.PostEndSession)
		}
		api.POST("/interactions", sessionHandlers.PostInteraction)

		// Visitor accounts
		visitors := api.Group("/visitors")
		{
			visitors.GET("", visitorHandlers.GetVisitors)
			visitors.GET("/:id", visitorHandlers.GetVisitor)
			visitors.GET("/:id/journey", visitorHandlers.GetVisitorJourney)
		}

		// Analytics projections
		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", analyticsHandlers.HandleDashboard)
			analytics.GET("/activity", analyticsHandlers.HandleActivityFeed)
			analytics.GET("/registries", analyticsHandlers.HandleRegistrySummary)
			analytics.GET("/performance", analyticsHandlers.HandlePerformanceStats)
		}

		// Alerts and action queue
		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertHandlers.GetAlerts)
			alerts.GET("/unread", alertHandlers.GetUnreadCount)
			alerts.POST("/:id/read", alertHandlers.PostAlertRead)
			alerts.POST("/:id/actioned", alertHandlers.PostAlertActioned)
		}
		actions := api.Group("/actions")
		{
			actions.GET("", alertHandlers.GetActionItems)
			actions.POST("/:id/status", alertHandlers.PostActionTransition)
		}

		// Exports
		export := api.Group("/export")
		{
			export.GET("/json", exportHandlers.GetJSONExport)
			export.GET("/profiles.csv", exportHandlers.GetProfilesCSV)
			export.GET("/places.csv", exportHandlers.GetPlacesCSV)
		}

		// Server-sent events
		api.GET("/stream", streamHandlers.GetSSE)
	}

	return r
}
