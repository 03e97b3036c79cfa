package services

import (
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qualifyingProfile(tier intel.WealthTier, score float64) *intel.WealthProfile {
	return &intel.WealthProfile{
		VisitorID:         "v1",
		SessionID:         "s1",
		Tier:              tier,
		LeadScore:         score,
		Status:            QualificationFor(score, tier),
		EstimatedNetWorth: intel.NetWorthRange{Min: 30_000_000, Max: 100_000_000},
		CreatedAt:         time.Now().UTC(),
	}
}

func TestRecommendActionsUHNWI(t *testing.T) {
	actions := RecommendActions(qualifyingProfile(intel.TierUHNWI, 70))
	assert.Contains(t, actions, "immediate VIP concierge contact")
	assert.Contains(t, actions, "executive alert to management")
}

func TestRecommendActionsRealEstateIntent(t *testing.T) {
	profile := qualifyingProfile(intel.TierHNWI, 70)
	profile.Intent = intel.InvestmentIntent{HasIntent: true, Types: []string{"real_estate"}}

	actions := RecommendActions(profile)
	assert.Contains(t, actions, "connect with real-estate partner")
	assert.NotContains(t, actions, "immediate VIP concierge contact")
}

func TestRecommendActionsHighPriorityScore(t *testing.T) {
	actions := RecommendActions(qualifyingProfile(intel.TierHNWI, 90))
	assert.Contains(t, actions, "schedule follow-up call within 24 hours")
}

func TestRecommendActionsDefaultPair(t *testing.T) {
	actions := RecommendActions(qualifyingProfile(intel.TierHNWI, 65))
	assert.Equal(t, []string{"monitor engagement", "add to nurture campaign"}, actions)
}

func TestCreateAlertStoresAlertAndActionItems(t *testing.T) {
	cache := manager.NewManager(50, nil)
	service := NewAlertService(cache, nil)
	now := time.Now().UTC()

	profile := qualifyingProfile(intel.TierUHNWI, 90)
	alert := service.CreateAlert(profile, "qualification reached qualified", now)

	require.NotEmpty(t, alert.ID)
	assert.Equal(t, "v1", alert.VisitorID)
	assert.False(t, alert.Read)
	assert.False(t, alert.Actioned)

	stored, found := cache.Alerts.GetAlert(alert.ID)
	require.True(t, found)
	assert.Equal(t, alert, stored)

	items := cache.Alerts.ActionItemsForVisitor("v1")
	require.Len(t, items, len(alert.RecommendedActions))
	for _, item := range items {
		assert.Equal(t, intel.ActionPending, item.Status)
	}

	var hasDueDate bool
	for _, item := range items {
		if item.Description == "schedule follow-up call within 24 hours" {
			require.NotNil(t, item.DueAt)
			assert.Equal(t, now.Add(24*time.Hour), *item.DueAt)
			hasDueDate = true
		}
	}
	assert.True(t, hasDueDate, "high-priority score gains a dated follow-up item")
}

func TestMarkReadAndActioned(t *testing.T) {
	cache := manager.NewManager(50, nil)
	service := NewAlertService(cache, nil)

	alert := service.CreateAlert(qualifyingProfile(intel.TierUHNWI, 70), "test", time.Now().UTC())

	require.NoError(t, service.MarkRead(alert.ID))
	require.NoError(t, service.MarkActioned(alert.ID))

	stored, _ := cache.Alerts.GetAlert(alert.ID)
	assert.True(t, stored.Read)
	assert.True(t, stored.Actioned)
	assert.Zero(t, cache.Alerts.UnreadCount())

	assert.Error(t, service.MarkRead("missing"))
	assert.Error(t, service.MarkActioned("missing"))
}

func TestTransitionActionHappyPath(t *testing.T) {
	cache := manager.NewManager(50, nil)
	service := NewAlertService(cache, nil)
	now := time.Now().UTC()

	alert := service.CreateAlert(qualifyingProfile(intel.TierUHNWI, 70), "test", now)
	items := cache.Alerts.ActionItemsForVisitor(alert.VisitorID)
	require.NotEmpty(t, items)
	itemID := items[0].ID

	item, err := service.TransitionAction(itemID, intel.ActionInProgress, now)
	require.NoError(t, err)
	assert.Equal(t, intel.ActionInProgress, item.Status)

	// pause back to pending, then drive to completion
	_, err = service.TransitionAction(itemID, intel.ActionPending, now)
	require.NoError(t, err)
	_, err = service.TransitionAction(itemID, intel.ActionInProgress, now)
	require.NoError(t, err)
	item, err = service.TransitionAction(itemID, intel.ActionCompleted, now)
	require.NoError(t, err)
	assert.Equal(t, intel.ActionCompleted, item.Status)
	require.NotNil(t, item.CompletedAt)
}

func TestTransitionActionRejectsInvalidMoves(t *testing.T) {
	cache := manager.NewManager(50, nil)
	service := NewAlertService(cache, nil)
	now := time.Now().UTC()

	alert := service.CreateAlert(qualifyingProfile(intel.TierUHNWI, 70), "test", now)
	itemID := cache.Alerts.ActionItemsForVisitor(alert.VisitorID)[0].ID

	_, err := service.TransitionAction(itemID, intel.ActionCompleted, now)
	assert.Error(t, err, "pending cannot jump straight to completed")

	item, _ := cache.Alerts.GetActionItem(itemID)
	assert.Equal(t, intel.ActionPending, item.Status, "rejected transition leaves state untouched")

	_, err = service.TransitionAction(itemID, intel.ActionDismissed, now)
	require.NoError(t, err)
	_, err = service.TransitionAction(itemID, intel.ActionInProgress, now)
	assert.Error(t, err, "dismissed is terminal")

	_, err = service.TransitionAction("missing", intel.ActionInProgress, now)
	assert.Error(t, err)
}
