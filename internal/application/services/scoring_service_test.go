package services

import (
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDisclosedPortfolioReachesUHNWI(t *testing.T) {
	extractor := NewExtractionService(DefaultRuleset(), nil)
	scoring := NewScoringService(nil)

	signals := extractor.ExtractSignals([]intel.Message{
		userMessage("I manage a $50M portfolio and fly private"),
	})
	profile := scoring.Score("v1", "s1", signals, intel.BehaviorMetrics{MessageCount: 1}, time.Now().UTC())

	assert.GreaterOrEqual(t, profile.EstimatedNetWorth.Min, 30_000_000.0)
	assert.Equal(t, intel.TierUHNWI, profile.Tier)
	assert.True(t, profile.Status.IsQualifying(), "uhnwi disclosure qualifies the lead")
}

func TestScoreLeadScoreAlwaysInRange(t *testing.T) {
	scoring := NewScoringService(nil)
	now := time.Now().UTC()

	heavy := make([]intel.WealthSignal, 0, 40)
	for i := 0; i < 40; i++ {
		heavy = append(heavy, intel.WealthSignal{
			Category: intel.SignalLifestyle, Type: "luxury_lifestyle",
			Evidence: "private chef", Weight: 8, Confidence: 0.9,
		})
	}

	cases := []struct {
		name     string
		signals  []intel.WealthSignal
		behavior intel.BehaviorMetrics
	}{
		{"no evidence", nil, intel.BehaviorMetrics{}},
		{"heavy evidence heavy behavior", heavy, intel.BehaviorMetrics{
			MessageCount: 100, InteractionCount: 100,
			Engagement: intel.EngagementHigh, SessionSeconds: 7200,
		}},
	}
	for _, tc := range cases {
		profile := scoring.Score("v", "s", tc.signals, tc.behavior, now)
		assert.GreaterOrEqual(t, profile.LeadScore, 0.0, tc.name)
		assert.LessOrEqual(t, profile.LeadScore, 100.0, tc.name)
	}
}

func TestTierFromNetWorthFloors(t *testing.T) {
	cases := []struct {
		floor float64
		want  intel.WealthTier
	}{
		{0, intel.TierUnknown},
		{500_000, intel.TierMassAffluent},
		{1_000_000, intel.TierHNWI},
		{9_999_999, intel.TierHNWI},
		{10_000_000, intel.TierVHNWI},
		{30_000_000, intel.TierUHNWI},
		{1_000_000_000, intel.TierBillionaire},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tierFromNetWorth(tc.floor), "floor %.0f", tc.floor)
	}
}

func TestQualificationForIsTotal(t *testing.T) {
	tiers := []intel.WealthTier{
		intel.TierUnknown, intel.TierAffluent, intel.TierMassAffluent,
		intel.TierHNWI, intel.TierVHNWI, intel.TierUHNWI, intel.TierBillionaire,
	}
	valid := map[intel.QualificationStatus]bool{
		intel.StatusCold: true, intel.StatusWarm: true,
		intel.StatusQualified: true, intel.StatusHot: true,
	}

	for score := 0.0; score <= 100; score += 5 {
		for _, tier := range tiers {
			status := QualificationFor(score, tier)
			assert.True(t, valid[status], "score %.0f tier %s mapped to %q", score, tier, status)
		}
	}
}

func TestQualificationBoundaries(t *testing.T) {
	assert.Equal(t, intel.StatusHot, QualificationFor(95, intel.TierUnknown), "score override reaches hot regardless of tier")
	assert.Equal(t, intel.StatusHot, QualificationFor(80, intel.TierHNWI))
	assert.Equal(t, intel.StatusQualified, QualificationFor(80, intel.TierAffluent), "high score without tier support stays qualified")
	assert.Equal(t, intel.StatusQualified, QualificationFor(10, intel.TierVHNWI), "vhnwi tier qualifies on its own")
	assert.Equal(t, intel.StatusWarm, QualificationFor(40, intel.TierAffluent))
	assert.Equal(t, intel.StatusCold, QualificationFor(0, intel.TierUnknown))
}

func TestScoreDerivesIntentAndInterests(t *testing.T) {
	scoring := NewScoringService(nil)
	signals := []intel.WealthSignal{
		{Category: intel.SignalRealEstate, Type: "property_portfolio", Evidence: "penthouse", Weight: 7, Confidence: 0.8},
		{Category: intel.SignalFinancialBehavior, Type: "investment_activity", Evidence: "family office", Weight: 6, Confidence: 0.75},
	}

	profile := scoring.Score("v1", "s1", signals, intel.BehaviorMetrics{}, time.Now().UTC())

	require.True(t, profile.Intent.HasIntent)
	assert.Contains(t, profile.Intent.Types, "real_estate")
	assert.Contains(t, profile.Intent.Types, "securities")
	assert.Equal(t, []string{"financial_behavior", "real_estate"}, profile.InterestCategories)
}

func TestScoreWithoutSignals(t *testing.T) {
	scoring := NewScoringService(nil)
	profile := scoring.Score("v1", "s1", nil, intel.BehaviorMetrics{MessageCount: 2}, time.Now().UTC())

	assert.Equal(t, intel.TierUnknown, profile.Tier)
	assert.Zero(t, profile.Confidence)
	assert.Zero(t, profile.EstimatedNetWorth.Min)
	assert.False(t, profile.Intent.HasIntent)
	assert.Equal(t, intel.StatusCold, profile.Status)
}

func TestWeightBandsRaiseTierWithoutAmounts(t *testing.T) {
	scoring := NewScoringService(nil)
	signals := []intel.WealthSignal{
		{Category: intel.SignalTravelAviation, Type: "private_aviation", Evidence: "fly private", Weight: 8, Confidence: 0.85},
		{Category: intel.SignalLifestyle, Type: "yacht_ownership", Evidence: "our yacht", Weight: 8, Confidence: 0.85},
	}

	profile := scoring.Score("v1", "s1", signals, intel.BehaviorMetrics{}, time.Now().UTC())

	assert.Equal(t, intel.TierHNWI, profile.Tier, "16 points of weight lands in the hnwi band")
	assert.Equal(t, 1_000_000.0, profile.EstimatedNetWorth.Min, "default band fills in when nothing was disclosed")
}
