package services

import (
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// NotificationService emails the concierge team when a hot-lead alert
// fires. It is inert unless ALERT_EMAIL_TO is configured.
type NotificationService struct {
	email          email.Service
	bus            messaging.Bus
	logger         *logging.ChanneledLogger
	subscriptionID string
}

// NewNotificationService creates the outbound notification relay.
func NewNotificationService(emailService email.Service, bus messaging.Bus, logger *logging.ChanneledLogger) *NotificationService {
	return &NotificationService{
		email:  emailService,
		bus:    bus,
		logger: logger,
	}
}

// Start attaches the relay to the hot-lead event stream.
func (s *NotificationService) Start() {
	if s.email == nil || config.AlertEmailTo == "" {
		if s.logger != nil {
			s.logger.Alert().Info("Alert email relay disabled", "configured", config.AlertEmailTo != "")
		}
		return
	}
	s.subscriptionID = s.bus.Subscribe([]events.Type{events.TypeHotLeadAlert}, s.handle)
	if s.logger != nil {
		s.logger.Alert().Info("Alert email relay attached", "to", config.AlertEmailTo)
	}
}

// Stop detaches the relay from the bus.
func (s *NotificationService) Stop() {
	if s.subscriptionID != "" {
		s.bus.Unsubscribe(s.subscriptionID)
		s.subscriptionID = ""
	}
}

func (s *NotificationService) handle(event events.Event) {
	hotLead, ok := event.(events.HotLeadAlert)
	if !ok {
		return
	}
	// events are delivered while the emitter holds the registry write
	// lock; the outbound send must not block under it
	go s.deliver(hotLead.Alert)
}

func (s *NotificationService) deliver(alert intel.HotLeadAlert) {
	if err := s.email.SendHotLeadAlertEmail(config.AlertEmailTo, &alert); err != nil {
		if s.logger != nil {
			s.logger.Alert().Error("Failed to send hot lead email", "alertId", alert.ID, "error", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Alert().Info("Hot lead email sent", "alertId", alert.ID, "to", config.AlertEmailTo)
	}
}
