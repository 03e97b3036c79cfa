package intel

import "time"

// ActivityType identifies one kind of feed entry.
type ActivityType string

const (
	ActivityNewSession          ActivityType = "new_session"
	ActivitySessionEnd          ActivityType = "session_end"
	ActivityMessageSent         ActivityType = "message_sent"
	ActivityInteraction         ActivityType = "interaction"
	ActivitySignalDetected      ActivityType = "signal_detected"
	ActivityTierChange          ActivityType = "tier_change"
	ActivityHotLead             ActivityType = "hot_lead"
	ActivityQualificationChange ActivityType = "qualification_change"
)

// Significance grades how loudly a feed entry should surface.
type Significance string

const (
	SignificanceLow      Significance = "low"
	SignificanceMedium   Significance = "medium"
	SignificanceHigh     Significance = "high"
	SignificanceCritical Significance = "critical"
)

// ActivityItem is one append-only entry in the capacity-bounded
// activity feed.
type ActivityItem struct {
	ID           string         `json:"id"`
	Type         ActivityType   `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	VisitorID    string         `json:"visitorId,omitempty"`
	SessionID    string         `json:"sessionId,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Significance Significance   `json:"significance"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
