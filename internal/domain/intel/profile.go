// Package intel provides the domain entities for visitor wealth intelligence.
package intel

import "time"

// WealthTier is the ordinal classification of estimated visitor net worth.
type WealthTier string

const (
	TierUnknown      WealthTier = "unknown"
	TierAffluent     WealthTier = "affluent"
	TierMassAffluent WealthTier = "mass_affluent"
	TierHNWI         WealthTier = "hnwi"
	TierVHNWI        WealthTier = "vhnwi"
	TierUHNWI        WealthTier = "uhnwi"
	TierBillionaire  WealthTier = "billionaire"
)

var tierRanks = map[WealthTier]int{
	TierUnknown:      0,
	TierAffluent:     1,
	TierMassAffluent: 2,
	TierHNWI:         3,
	TierVHNWI:        4,
	TierUHNWI:        5,
	TierBillionaire:  6,
}

// Rank returns the tier's ordinal position. Unrecognized tiers rank as unknown.
func (t WealthTier) Rank() int {
	return tierRanks[t]
}

// AtLeast reports whether t is at or above other in the tier ordering.
func (t WealthTier) AtLeast(other WealthTier) bool {
	return t.Rank() >= other.Rank()
}

// MaxTier returns the higher of two tiers by ordinal rank.
func MaxTier(a, b WealthTier) WealthTier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// QualificationStatus is the categorical sales-readiness label derived
// from lead score and tier.
type QualificationStatus string

const (
	StatusCold      QualificationStatus = "cold"
	StatusWarm      QualificationStatus = "warm"
	StatusQualified QualificationStatus = "qualified"
	StatusHot       QualificationStatus = "hot"
)

// IsQualifying reports whether the status triggers hot-lead alerting.
func (s QualificationStatus) IsQualifying() bool {
	return s == StatusQualified || s == StatusHot
}

// NetWorthRange is an estimated net worth band in USD.
type NetWorthRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Midpoint returns the center of the range, used for pipeline value estimates.
func (r NetWorthRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// InvestmentIntent summarizes detected purchase/investment interest.
type InvestmentIntent struct {
	HasIntent bool     `json:"hasIntent"`
	Types     []string `json:"types"`
	Timeline  string   `json:"timeline"`
}

// EngagementLevel buckets behavioral engagement.
type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// BehaviorMetrics carries the simple behavioral counters fed to scoring.
type BehaviorMetrics struct {
	MessageCount     int             `json:"messageCount"`
	InteractionCount int             `json:"interactionCount"`
	Engagement       EngagementLevel `json:"engagement"`
	SessionSeconds   float64         `json:"sessionSeconds"`
}

// WealthProfile is the scored output for one session, and, once merged,
// the visitor-level aggregated profile.
type WealthProfile struct {
	VisitorID          string              `json:"visitorId"`
	SessionID          string              `json:"sessionId"`
	Tier               WealthTier          `json:"tier"`
	Confidence         float64             `json:"confidence"`
	EstimatedNetWorth  NetWorthRange       `json:"estimatedNetWorth"`
	LeadScore          float64             `json:"leadScore"`
	Status             QualificationStatus `json:"status"`
	Intent             InvestmentIntent    `json:"intent"`
	InterestCategories []string            `json:"interestCategories"`
	Signals            []WealthSignal      `json:"signals"`
	Behavior           BehaviorMetrics     `json:"behavior"`
	CreatedAt          time.Time           `json:"createdAt"`
}
