// Package events defines the closed set of analytics events emitted by
// the intelligence pipeline.
package events

import (
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
)

// Type identifies one event kind in the closed set.
type Type string

const (
	TypeNewSession     Type = "new_session"
	TypeSessionEnd     Type = "session_end"
	TypeSignalDetected Type = "signal_detected"
	TypeTierChange     Type = "tier_change"
	TypeHotLeadAlert   Type = "hot_lead_alert"
)

// AllTypes lists every event type; subscribing with it receives the
// full stream.
var AllTypes = []Type{
	TypeNewSession,
	TypeSessionEnd,
	TypeSignalDetected,
	TypeTierChange,
	TypeHotLeadAlert,
}

// Event is the sealed interface implemented by every analytics event.
// Each concrete event carries its own payload so subscribers switch on
// the concrete type rather than inspecting string-keyed maps.
type Event interface {
	EventType() Type
	OccurredAt() time.Time
}

// NewSession is emitted when a conversation session starts.
type NewSession struct {
	SessionID string
	VisitorID string
	Meta      intel.SessionMeta
	Timestamp time.Time
}

func (e NewSession) EventType() Type       { return TypeNewSession }
func (e NewSession) OccurredAt() time.Time { return e.Timestamp }

// SessionEnd is emitted when a session is finalized.
type SessionEnd struct {
	SessionID    string
	VisitorID    string
	MessageCount int
	Profile      *intel.WealthProfile
	Timestamp    time.Time
}

func (e SessionEnd) EventType() Type       { return TypeSessionEnd }
func (e SessionEnd) OccurredAt() time.Time { return e.Timestamp }

// SignalDetected is emitted for every newly extracted signal at or
// above the configured minimum weight.
type SignalDetected struct {
	SessionID string
	VisitorID string
	Signal    intel.WealthSignal
	Timestamp time.Time
}

func (e SignalDetected) EventType() Type       { return TypeSignalDetected }
func (e SignalDetected) OccurredAt() time.Time { return e.Timestamp }

// TierChange is emitted whenever scoring computes a tier different from
// the visitor's previous tier.
type TierChange struct {
	SessionID string
	VisitorID string
	From      intel.WealthTier
	To        intel.WealthTier
	Timestamp time.Time
}

func (e TierChange) EventType() Type       { return TypeTierChange }
func (e TierChange) OccurredAt() time.Time { return e.Timestamp }

// HotLeadAlert is emitted exactly once per transition into a
// qualifying status.
type HotLeadAlert struct {
	Alert     intel.HotLeadAlert
	Timestamp time.Time
}

func (e HotLeadAlert) EventType() Type       { return TypeHotLeadAlert }
func (e HotLeadAlert) OccurredAt() time.Time { return e.Timestamp }
