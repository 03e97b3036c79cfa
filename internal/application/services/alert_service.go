package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// Recommended action texts produced by the rule table below.
const (
	actionVIPContact     = "immediate VIP concierge contact"
	actionExecutiveAlert = "executive alert to management"
	actionRealEstate     = "connect with real-estate partner"
	actionFollowUp24h    = "schedule follow-up call within 24 hours"
	actionMonitor        = "monitor engagement"
	actionNurture        = "add to nurture campaign"
)

// AlertService creates hot-lead alerts with recommended follow-up
// actions and manages the lead action work queue.
type AlertService struct {
	cache  *manager.Manager
	logger *logging.ChanneledLogger
}

// NewAlertService creates the alert/action service.
func NewAlertService(cache *manager.Manager, logger *logging.ChanneledLogger) *AlertService {
	return &AlertService{cache: cache, logger: logger}
}

// RecommendActions derives follow-up recommendations from tier,
// investment intent, and lead score. When no rule fires it falls back
// to the monitor/nurture pair.
func RecommendActions(profile *intel.WealthProfile) []string {
	var actions []string

	if profile.Tier.AtLeast(intel.TierUHNWI) {
		actions = append(actions, actionVIPContact, actionExecutiveAlert)
	}
	if profile.Intent.HasIntent {
		for _, t := range profile.Intent.Types {
			if t == "real_estate" {
				actions = append(actions, actionRealEstate)
				break
			}
		}
	}
	if profile.LeadScore >= config.HighPriorityScore {
		actions = append(actions, actionFollowUp24h)
	}

	if len(actions) == 0 {
		actions = append(actions, actionMonitor, actionNurture)
	}
	return actions
}

// CreateAlert constructs and stores the one-time alert for a qualifying
// transition, together with its lead action items. It is called by the
// aggregator under the registry's entity-state write lock.
func (s *AlertService) CreateAlert(profile *intel.WealthProfile, reason string, now time.Time) *intel.HotLeadAlert {
	alert := &intel.HotLeadAlert{
		ID:                 security.GenerateULID(),
		VisitorID:          profile.VisitorID,
		SessionID:          profile.SessionID,
		Timestamp:          now,
		Tier:               profile.Tier,
		LeadScore:          profile.LeadScore,
		Status:             profile.Status,
		TriggerReason:      reason,
		EstimatedNetWorth:  profile.EstimatedNetWorth,
		RecommendedActions: RecommendActions(profile),
	}

	s.cache.Alerts.AddAlert(alert)
	for _, item := range s.actionItemsFor(alert, now) {
		s.cache.Alerts.AddActionItem(item)
	}
	s.cache.InvalidateDashboard()

	if s.logger != nil {
		s.logger.Alert().Info("Hot lead alert created",
			"alertId", alert.ID,
			"visitorId", alert.VisitorID,
			"tier", string(alert.Tier),
			"leadScore", alert.LeadScore,
			"reason", reason)
	}
	return alert
}

// actionItemsFor translates the alert's recommendations into tracked
// work-queue items.
func (s *AlertService) actionItemsFor(alert *intel.HotLeadAlert, now time.Time) []*intel.LeadActionItem {
	items := make([]*intel.LeadActionItem, 0, len(alert.RecommendedActions))
	for _, action := range alert.RecommendedActions {
		item := &intel.LeadActionItem{
			ID:          security.GenerateULID(),
			VisitorID:   alert.VisitorID,
			Description: action,
			Status:      intel.ActionPending,
			CreatedAt:   now,
		}
		switch action {
		case actionVIPContact:
			item.Type = intel.ActionCall
			item.Priority = intel.PriorityUrgent
		case actionExecutiveAlert:
			item.Type = intel.ActionFlagVIP
			item.Priority = intel.PriorityUrgent
		case actionRealEstate:
			item.Type = intel.ActionConnectPartner
			item.Priority = intel.PriorityHigh
		case actionFollowUp24h:
			item.Type = intel.ActionScheduleMeet
			item.Priority = intel.PriorityHigh
			due := now.Add(24 * time.Hour)
			item.DueAt = &due
		case actionNurture:
			item.Type = intel.ActionEmail
			item.Priority = intel.PriorityLow
		default:
			item.Type = intel.ActionSendInfo
			item.Priority = intel.PriorityMedium
		}
		items = append(items, item)
	}
	return items
}

// MarkRead flags an alert as read.
func (s *AlertService) MarkRead(alertID string) error {
	var err error
	s.cache.Mutate(func() {
		if !s.cache.Alerts.MarkAlertRead(alertID) {
			err = fmt.Errorf("alert not found: %s", alertID)
		}
	})
	return err
}

// MarkActioned flags an alert as actioned.
func (s *AlertService) MarkActioned(alertID string) error {
	var err error
	s.cache.Mutate(func() {
		if !s.cache.Alerts.MarkAlertActioned(alertID) {
			err = fmt.Errorf("alert not found: %s", alertID)
		}
	})
	return err
}

// TransitionAction moves a lead action item through its state machine.
// Invalid transitions are rejected and leave the item untouched. The
// returned item is a copy, safe to serialize lock-free.
func (s *AlertService) TransitionAction(itemID string, to intel.ActionStatus, now time.Time) (*intel.LeadActionItem, error) {
	var result *intel.LeadActionItem
	var err error
	s.cache.Mutate(func() {
		item, found := s.cache.Alerts.GetActionItem(itemID)
		if !found {
			err = fmt.Errorf("action item not found: %s", itemID)
			return
		}
		if err = item.Transition(to, now); err != nil {
			if s.logger != nil {
				s.logger.Alert().Warn("Rejected action transition", "itemId", itemID, "to", string(to), "error", err)
			}
			return
		}
		copied := *item
		result = &copied
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Alert().Debug("Action item transitioned", "itemId", itemID, "status", string(result.Status))
	}
	return result, nil
}
