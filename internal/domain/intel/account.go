package intel

import "time"

// JourneyNodeType identifies one kind of entry in a visitor's journey log.
type JourneyNodeType string

const (
	JourneySessionStart   JourneyNodeType = "session_start"
	JourneyMessage        JourneyNodeType = "message"
	JourneyInteraction    JourneyNodeType = "interaction"
	JourneySignalDetected JourneyNodeType = "signal_detected"
	JourneyTierUpgrade    JourneyNodeType = "tier_upgrade"
	JourneySessionEnd     JourneyNodeType = "session_end"
)

// JourneyNode is one timestamped entry in a visitor's chronological
// event log.
type JourneyNode struct {
	Type      JourneyNodeType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	SessionID string          `json:"sessionId,omitempty"`
	Detail    string          `json:"detail,omitempty"`
	Tier      WealthTier      `json:"tier,omitempty"`
}

// SessionSummary is the per-session digest retained on the account after
// the full session may have been evicted.
type SessionSummary struct {
	SessionID    string              `json:"sessionId"`
	StartedAt    time.Time           `json:"startedAt"`
	EndedAt      *time.Time          `json:"endedAt,omitempty"`
	MessageCount int                 `json:"messageCount"`
	Tier         WealthTier          `json:"tier"`
	LeadScore    float64             `json:"leadScore"`
	Status       QualificationStatus `json:"status"`
}

// VisitorAccount is the durable cross-session identity for one visitor.
// It is created on first session, never deleted for the life of the
// process (subject only to the configured capacity bound), and mutated
// only by the aggregation service.
type VisitorAccount struct {
	VisitorID          string              `json:"visitorId"`
	FirstSeen          time.Time           `json:"firstSeen"`
	LastSeen           time.Time           `json:"lastSeen"`
	Sessions           []SessionSummary    `json:"sessions"`
	AggregatedProfile  *WealthProfile      `json:"aggregatedProfile,omitempty"`
	Interactions       []InteractionEvent  `json:"interactions"`
	Journey            []JourneyNode       `json:"journey"`
	TotalMessages      int                 `json:"totalMessages"`
	TotalInteractions  int                 `json:"totalInteractions"`
	HighestTierReached WealthTier          `json:"highestTierReached"`
	PeakLeadScore      float64             `json:"peakLeadScore"`
	LastQualification  QualificationStatus `json:"lastQualification"`
	Tags               []string            `json:"tags"`
}

// Clone returns a copy safe to read outside the registry locks. The
// aggregated profile pointer is shared for the same reason as
// ConversationSession.Clone: profiles are replaced, never edited.
func (a *VisitorAccount) Clone() *VisitorAccount {
	out := *a
	out.Sessions = append([]SessionSummary(nil), a.Sessions...)
	out.Interactions = append([]InteractionEvent(nil), a.Interactions...)
	out.Journey = append([]JourneyNode(nil), a.Journey...)
	out.Tags = append([]string(nil), a.Tags...)
	return &out
}

// Touch moves LastSeen forward only.
func (a *VisitorAccount) Touch(t time.Time) {
	if t.After(a.LastSeen) {
		a.LastSeen = t
	}
}
