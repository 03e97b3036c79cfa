package intel

import (
	"fmt"
	"time"
)

// HotLeadAlert is the one-time notification created when a visitor
// crosses into a qualifying status. It is mutated only via the explicit
// mark-read / mark-actioned operations.
type HotLeadAlert struct {
	ID                 string              `json:"id"`
	VisitorID          string              `json:"visitorId"`
	SessionID          string              `json:"sessionId"`
	Timestamp          time.Time           `json:"timestamp"`
	Tier               WealthTier          `json:"tier"`
	LeadScore          float64             `json:"leadScore"`
	Status             QualificationStatus `json:"status"`
	TriggerReason      string              `json:"triggerReason"`
	EstimatedNetWorth  NetWorthRange       `json:"estimatedNetWorth"`
	RecommendedActions []string            `json:"recommendedActions"`
	Read               bool                `json:"read"`
	Actioned           bool                `json:"actioned"`
}

// ActionType is the kind of follow-up a lead action item requests.
type ActionType string

const (
	ActionCall           ActionType = "call"
	ActionEmail          ActionType = "email"
	ActionConnectPartner ActionType = "connect_partner"
	ActionScheduleMeet   ActionType = "schedule_meeting"
	ActionSendInfo       ActionType = "send_info"
	ActionFlagVIP        ActionType = "flag_vip"
)

// ActionPriority orders follow-up urgency.
type ActionPriority string

const (
	PriorityLow    ActionPriority = "low"
	PriorityMedium ActionPriority = "medium"
	PriorityHigh   ActionPriority = "high"
	PriorityUrgent ActionPriority = "urgent"
)

// ActionStatus is the finite state of a lead action item.
type ActionStatus string

const (
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionDismissed  ActionStatus = "dismissed"
)

// validActionTransitions encodes the full transition table:
// pending -> in_progress -> completed, pending -> dismissed, and
// in_progress -> pending (pause). Everything else is rejected.
var validActionTransitions = map[ActionStatus][]ActionStatus{
	ActionPending:    {ActionInProgress, ActionDismissed},
	ActionInProgress: {ActionCompleted, ActionPending},
}

// LeadActionItem is one tracked follow-up task for a visitor.
type LeadActionItem struct {
	ID          string         `json:"id"`
	VisitorID   string         `json:"visitorId"`
	Type        ActionType     `json:"type"`
	Priority    ActionPriority `json:"priority"`
	Description string         `json:"description"`
	DueAt       *time.Time     `json:"dueAt,omitempty"`
	Status      ActionStatus   `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// Transition moves the item to the requested status, rejecting invalid
// transitions without touching existing state.
func (i *LeadActionItem) Transition(to ActionStatus, now time.Time) error {
	for _, allowed := range validActionTransitions[i.Status] {
		if allowed == to {
			i.Status = to
			if to == ActionCompleted {
				t := now
				i.CompletedAt = &t
			}
			return nil
		}
	}
	return fmt.Errorf("invalid action transition: %s -> %s", i.Status, to)
}
