package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/security"
)

// ActivityService projects the analytics event stream into the bounded
// activity feed shown on the dashboard.
type ActivityService struct {
	cache          *manager.Manager
	bus            messaging.Bus
	broadcaster    messaging.Broadcaster
	logger         *logging.ChanneledLogger
	subscriptionID string
}

// NewActivityService creates the feed projector. Call Start to attach
// it to the bus.
func NewActivityService(cache *manager.Manager, bus messaging.Bus, broadcaster messaging.Broadcaster, logger *logging.ChanneledLogger) *ActivityService {
	return &ActivityService{
		cache:       cache,
		bus:         bus,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Start subscribes the projector to the full event stream.
func (s *ActivityService) Start() {
	s.subscriptionID = s.bus.Subscribe(events.AllTypes, s.handle)
	if s.logger != nil {
		s.logger.Analytics().Info("Activity feed projector attached", "subscriptionId", s.subscriptionID)
	}
}

// Stop detaches the projector from the bus.
func (s *ActivityService) Stop() {
	if s.subscriptionID != "" {
		s.bus.Unsubscribe(s.subscriptionID)
		s.subscriptionID = ""
	}
}

// Recent returns up to n feed items, newest first.
func (s *ActivityService) Recent(n int) []intel.ActivityItem {
	return s.cache.Activity.Recent(n)
}

func (s *ActivityService) handle(event events.Event) {
	for _, item := range s.itemsFor(event) {
		s.cache.Activity.Append(item)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event)
	}
}

// itemsFor maps one bus event to its feed entries.
func (s *ActivityService) itemsFor(event events.Event) []intel.ActivityItem {
	base := intel.ActivityItem{
		ID:        security.GenerateULID(),
		Timestamp: event.OccurredAt(),
	}

	switch e := event.(type) {
	case events.NewSession:
		base.Type = intel.ActivityNewSession
		base.VisitorID = e.VisitorID
		base.SessionID = e.SessionID
		base.Title = "New session"
		base.Description = fmt.Sprintf("Visitor %s started a conversation", e.VisitorID)
		base.Significance = intel.SignificanceLow
		base.Metadata = map[string]any{"device": e.Meta.DeviceClass, "referrer": e.Meta.Referrer}
		return []intel.ActivityItem{base}

	case events.SessionEnd:
		base.Type = intel.ActivitySessionEnd
		base.VisitorID = e.VisitorID
		base.SessionID = e.SessionID
		base.Title = "Session ended"
		base.Description = fmt.Sprintf("Session closed after %d messages", e.MessageCount)
		base.Significance = intel.SignificanceLow
		items := []intel.ActivityItem{base}

		if e.Profile != nil && e.Profile.Status.IsQualifying() {
			items = append(items, intel.ActivityItem{
				ID:           security.GenerateULID(),
				Type:         intel.ActivityQualificationChange,
				Timestamp:    e.Timestamp,
				VisitorID:    e.VisitorID,
				SessionID:    e.SessionID,
				Title:        "Qualified lead session closed",
				Description:  fmt.Sprintf("Visitor %s left at status %s", e.VisitorID, e.Profile.Status),
				Significance: intel.SignificanceMedium,
			})
		}
		return items

	case events.SignalDetected:
		base.Type = intel.ActivitySignalDetected
		base.VisitorID = e.VisitorID
		base.SessionID = e.SessionID
		base.Title = fmt.Sprintf("Signal: %s", e.Signal.Type)
		base.Description = fmt.Sprintf("%q (weight %.0f)", e.Signal.Evidence, e.Signal.Weight)
		base.Significance = intel.SignificanceMedium
		if e.Signal.Weight >= 10 {
			base.Significance = intel.SignificanceHigh
		}
		base.Metadata = map[string]any{"category": string(e.Signal.Category), "confidence": e.Signal.Confidence}
		return []intel.ActivityItem{base}

	case events.TierChange:
		base.Type = intel.ActivityTierChange
		base.VisitorID = e.VisitorID
		base.SessionID = e.SessionID
		base.Title = "Tier change"
		base.Description = fmt.Sprintf("Visitor %s moved %s -> %s", e.VisitorID, e.From, e.To)
		base.Significance = intel.SignificanceMedium
		if e.To.AtLeast(intel.TierVHNWI) {
			base.Significance = intel.SignificanceHigh
		}
		return []intel.ActivityItem{base}

	case events.HotLeadAlert:
		base.Type = intel.ActivityHotLead
		base.VisitorID = e.Alert.VisitorID
		base.SessionID = e.Alert.SessionID
		base.Title = "Hot lead"
		base.Description = fmt.Sprintf("%s lead at tier %s, score %.0f", e.Alert.Status, e.Alert.Tier, e.Alert.LeadScore)
		base.Significance = intel.SignificanceCritical
		base.Metadata = map[string]any{"alertId": e.Alert.ID, "reason": e.Alert.TriggerReason}
		return []intel.ActivityItem{base}
	}

	return nil
}

// RecordMessageActivity adds a message_sent entry. Messages do not flow
// over the bus, so the session service reports them directly.
func (s *ActivityService) RecordMessageActivity(visitorID, sessionID string, role intel.MessageRole, now time.Time) {
	s.cache.Activity.Append(intel.ActivityItem{
		ID:           security.GenerateULID(),
		Type:         intel.ActivityMessageSent,
		Timestamp:    now,
		VisitorID:    visitorID,
		SessionID:    sessionID,
		Title:        "Message",
		Description:  fmt.Sprintf("%s message in session %s", role, sessionID),
		Significance: intel.SignificanceLow,
	})
}

// RecordInteractionActivity adds an interaction entry to the feed.
func (s *ActivityService) RecordInteractionActivity(event intel.InteractionEvent) {
	description := string(event.Type)
	if event.PlaceName != "" {
		description = fmt.Sprintf("%s on %s", event.Type, event.PlaceName)
	}
	s.cache.Activity.Append(intel.ActivityItem{
		ID:           security.GenerateULID(),
		Type:         intel.ActivityInteraction,
		Timestamp:    event.Timestamp,
		VisitorID:    event.VisitorID,
		SessionID:    event.SessionID,
		Title:        "Interaction",
		Description:  description,
		Significance: intel.SignificanceLow,
		Metadata:     map[string]any{"placeId": event.PlaceID, "source": event.Source},
	})
}
