package services

import (
	"sort"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// Canonical net-worth floors per tier, USD.
const (
	hnwiFloor        = 1_000_000
	vhnwiFloor       = 10_000_000
	uhnwiFloor       = 30_000_000
	billionaireFloor = 1_000_000_000
)

// Disclosed amounts are treated as partial evidence of total net worth:
// the floor discounts the figure, the ceiling assumes it understates.
const (
	disclosureFloorFactor   = 0.6
	disclosureCeilingFactor = 2.0
)

// ScoringService turns an extracted signal set plus behavioral counters
// into a session-level WealthProfile. All outputs are pure functions of
// their inputs; identical inputs always produce identical profiles.
type ScoringService struct {
	logger *logging.ChanneledLogger
}

// NewScoringService creates the tier/score engine.
func NewScoringService(logger *logging.ChanneledLogger) *ScoringService {
	return &ScoringService{logger: logger}
}

// Score computes the profile for one session's evidence.
func (s *ScoringService) Score(visitorID, sessionID string, signals []intel.WealthSignal, behavior intel.BehaviorMetrics, now time.Time) *intel.WealthProfile {
	totalWeight := 0.0
	for _, sig := range signals {
		totalWeight += sig.Weight
	}

	estimate := estimateNetWorth(signals)
	tier := deriveTier(estimate, totalWeight)
	if estimate.Max == 0 {
		estimate = defaultRangeForTier(tier)
	}

	leadScore := computeLeadScore(totalWeight, behavior)
	status := QualificationFor(leadScore, tier)

	profile := &intel.WealthProfile{
		VisitorID:          visitorID,
		SessionID:          sessionID,
		Tier:               tier,
		Confidence:         weightedConfidence(signals),
		EstimatedNetWorth:  estimate,
		LeadScore:          leadScore,
		Status:             status,
		Intent:             deriveIntent(signals, leadScore, status),
		InterestCategories: interestCategories(signals),
		Signals:            signals,
		Behavior:           behavior,
		CreatedAt:          now,
	}

	if s.logger != nil {
		s.logger.Signal().Debug("Profile scored",
			"visitorId", visitorID, "sessionId", sessionID,
			"tier", string(tier), "leadScore", leadScore, "status", string(status))
	}
	return profile
}

// estimateNetWorth derives a USD range from explicit dollar disclosures.
// Returns a zero range when no signal carried an amount.
func estimateNetWorth(signals []intel.WealthSignal) intel.NetWorthRange {
	var largest float64
	for _, sig := range signals {
		if sig.AmountUSD > largest {
			largest = sig.AmountUSD
		}
	}
	if largest == 0 {
		return intel.NetWorthRange{}
	}
	return intel.NetWorthRange{
		Min: largest * disclosureFloorFactor,
		Max: largest * disclosureCeilingFactor,
	}
}

// deriveTier maps the net-worth floor and the accumulated signal weight
// to a tier, taking whichever evidence path ranks higher.
func deriveTier(estimate intel.NetWorthRange, totalWeight float64) intel.WealthTier {
	return intel.MaxTier(tierFromNetWorth(estimate.Min), tierFromWeight(totalWeight))
}

func tierFromNetWorth(floor float64) intel.WealthTier {
	switch {
	case floor >= billionaireFloor:
		return intel.TierBillionaire
	case floor >= uhnwiFloor:
		return intel.TierUHNWI
	case floor >= vhnwiFloor:
		return intel.TierVHNWI
	case floor >= hnwiFloor:
		return intel.TierHNWI
	case floor > 0:
		return intel.TierMassAffluent
	default:
		return intel.TierUnknown
	}
}

func tierFromWeight(totalWeight float64) intel.WealthTier {
	switch {
	case totalWeight >= 25:
		return intel.TierUHNWI
	case totalWeight >= 18:
		return intel.TierVHNWI
	case totalWeight >= 12:
		return intel.TierHNWI
	case totalWeight >= 7:
		return intel.TierMassAffluent
	case totalWeight >= 3:
		return intel.TierAffluent
	default:
		return intel.TierUnknown
	}
}

// defaultRangeForTier supplies the canonical band when the visitor never
// disclosed a figure.
func defaultRangeForTier(tier intel.WealthTier) intel.NetWorthRange {
	switch tier {
	case intel.TierBillionaire:
		return intel.NetWorthRange{Min: billionaireFloor, Max: 5_000_000_000}
	case intel.TierUHNWI:
		return intel.NetWorthRange{Min: uhnwiFloor, Max: billionaireFloor}
	case intel.TierVHNWI:
		return intel.NetWorthRange{Min: vhnwiFloor, Max: uhnwiFloor}
	case intel.TierHNWI:
		return intel.NetWorthRange{Min: hnwiFloor, Max: vhnwiFloor}
	case intel.TierMassAffluent:
		return intel.NetWorthRange{Min: 500_000, Max: hnwiFloor}
	case intel.TierAffluent:
		return intel.NetWorthRange{Min: 100_000, Max: 500_000}
	default:
		return intel.NetWorthRange{}
	}
}

// computeLeadScore combines signal weight with behavioral engagement and
// clamps the result to [0,100].
func computeLeadScore(totalWeight float64, behavior intel.BehaviorMetrics) float64 {
	score := totalWeight * 2.5
	if score > 60 {
		score = 60
	}

	switch behavior.Engagement {
	case intel.EngagementHigh:
		score += 15
	case intel.EngagementMedium:
		score += 8
	}

	messagePoints := float64(behavior.MessageCount) * 2
	if messagePoints > 10 {
		messagePoints = 10
	}
	score += messagePoints

	interactionPoints := float64(behavior.InteractionCount)
	if interactionPoints > 10 {
		interactionPoints = 10
	}
	score += interactionPoints

	if behavior.SessionSeconds >= 300 {
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// QualificationFor maps every (leadScore, tier) pair to exactly one
// status. Thresholds come from config and are env-overridable.
func QualificationFor(leadScore float64, tier intel.WealthTier) intel.QualificationStatus {
	switch {
	case leadScore >= config.HotScoreOverride:
		return intel.StatusHot
	case leadScore >= config.HotScoreThreshold && tier.AtLeast(intel.TierHNWI):
		return intel.StatusHot
	case leadScore >= config.QualifiedScoreThreshold:
		return intel.StatusQualified
	case tier.AtLeast(intel.TierVHNWI):
		return intel.StatusQualified
	case leadScore >= config.WarmScoreThreshold:
		return intel.StatusWarm
	default:
		return intel.StatusCold
	}
}

func weightedConfidence(signals []intel.WealthSignal) float64 {
	var weightSum, weighted float64
	for _, sig := range signals {
		weightSum += sig.Weight
		weighted += sig.Weight * sig.Confidence
	}
	if weightSum == 0 {
		return 0
	}
	return weighted / weightSum
}

func deriveIntent(signals []intel.WealthSignal, leadScore float64, status intel.QualificationStatus) intel.InvestmentIntent {
	typeSet := make(map[string]bool)
	for _, sig := range signals {
		switch sig.Category {
		case intel.SignalRealEstate:
			typeSet["real_estate"] = true
		case intel.SignalFinancialBehavior:
			typeSet["securities"] = true
		case intel.SignalTravelAviation:
			typeSet["lifestyle"] = true
		}
	}
	if len(typeSet) == 0 {
		return intel.InvestmentIntent{}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	timeline := "exploratory"
	if leadScore >= config.HighPriorityScore {
		timeline = "immediate"
	} else if status.IsQualifying() {
		timeline = "near_term"
	}

	return intel.InvestmentIntent{HasIntent: true, Types: types, Timeline: timeline}
}

func interestCategories(signals []intel.WealthSignal) []string {
	set := make(map[string]bool)
	for _, sig := range signals {
		set[string(sig.Category)] = true
	}
	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
