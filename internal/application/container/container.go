// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Intelligence pipeline services
	ExtractionService  *services.ExtractionService
	ScoringService     *services.ScoringService
	SessionService     *services.SessionService
	AggregationService *services.AggregationService
	AlertService       *services.AlertService

	// Projection and output services
	DashboardService    *services.DashboardService
	ActivityService     *services.ActivityService
	ExportService       *services.ExportService
	NotificationService *services.NotificationService

	// Infrastructure Dependencies
	CacheManager *manager.Manager
	Bus          messaging.Bus
	Broadcaster  *messaging.SSEBroadcaster
	EmailService email.Service
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer() (*Container, error) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tracker := performance.NewTracker(1000)
	cacheManager := manager.NewManager(config.MaxActivityItems, logger)
	bus := messaging.NewAnalyticsBus(logger)
	broadcaster := messaging.NewSSEBroadcaster(logger)

	emailService, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Alert email delivery disabled", "reason", err.Error())
		emailService = nil
	}

	ruleset, err := loadRuleset(logger)
	if err != nil {
		return nil, err
	}

	extraction := services.NewExtractionService(ruleset, logger)
	scoring := services.NewScoringService(logger)
	alerts := services.NewAlertService(cacheManager, logger)
	aggregation := services.NewAggregationService(cacheManager, bus, alerts, logger)
	activity := services.NewActivityService(cacheManager, bus, broadcaster, logger)
	session := services.NewSessionService(cacheManager, extraction, scoring, aggregation, activity, bus, tracker, logger)
	dashboard := services.NewDashboardService(cacheManager, bus, tracker, logger)
	export := services.NewExportService(cacheManager, dashboard, logger)
	notification := services.NewNotificationService(emailService, bus, logger)

	return &Container{
		ExtractionService:   extraction,
		ScoringService:      scoring,
		SessionService:      session,
		AggregationService:  aggregation,
		AlertService:        alerts,
		DashboardService:    dashboard,
		ActivityService:     activity,
		ExportService:       export,
		NotificationService: notification,

		CacheManager: cacheManager,
		Bus:          bus,
		Broadcaster:  broadcaster,
		EmailService: emailService,
		Logger:       logger,
		PerfTracker:  tracker,
	}, nil
}

// Start attaches the bus-driven projectors. Call once after construction.
func (c *Container) Start() {
	c.ActivityService.Start()
	c.NotificationService.Start()
}

// Stop detaches the bus-driven projectors.
func (c *Container) Stop() {
	c.NotificationService.Stop()
	c.ActivityService.Stop()
}

func loadRuleset(logger *logging.ChanneledLogger) (*services.Ruleset, error) {
	if config.RulesetPath == "" {
		return services.DefaultRuleset(), nil
	}
	ruleset, err := services.LoadRuleset(config.RulesetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load signal ruleset: %w", err)
	}
	logger.Startup().Info("Loaded external signal ruleset", "path", config.RulesetPath, "rules", len(ruleset.Rules))
	return ruleset, nil
}
