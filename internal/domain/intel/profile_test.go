package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOrdering(t *testing.T) {
	ordered := []WealthTier{
		TierUnknown,
		TierAffluent,
		TierMassAffluent,
		TierHNWI,
		TierVHNWI,
		TierUHNWI,
		TierBillionaire,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank(), "%s must outrank %s", ordered[i], ordered[i-1])
	}

	assert.True(t, TierUHNWI.AtLeast(TierHNWI))
	assert.True(t, TierHNWI.AtLeast(TierHNWI))
	assert.False(t, TierAffluent.AtLeast(TierVHNWI))

	assert.Equal(t, 0, WealthTier("bogus").Rank(), "unrecognized tiers rank as unknown")
}

func TestMaxTier(t *testing.T) {
	assert.Equal(t, TierVHNWI, MaxTier(TierHNWI, TierVHNWI))
	assert.Equal(t, TierVHNWI, MaxTier(TierVHNWI, TierHNWI))
	assert.Equal(t, TierBillionaire, MaxTier(TierBillionaire, TierBillionaire))
	assert.Equal(t, TierAffluent, MaxTier(TierUnknown, TierAffluent))
}

func TestQualificationStatusIsQualifying(t *testing.T) {
	assert.True(t, StatusHot.IsQualifying())
	assert.True(t, StatusQualified.IsQualifying())
	assert.False(t, StatusWarm.IsQualifying())
	assert.False(t, StatusCold.IsQualifying())
}

func TestNetWorthRangeMidpoint(t *testing.T) {
	r := NetWorthRange{Min: 30_000_000, Max: 100_000_000}
	assert.InDelta(t, 65_000_000, r.Midpoint(), 0.001)
	assert.Zero(t, NetWorthRange{}.Midpoint())
}

func TestActionItemTransitions(t *testing.T) {
	now := time.Now().UTC()

	t.Run("pending to completed via in_progress", func(t *testing.T) {
		item := LeadActionItem{Status: ActionPending}
		require.NoError(t, item.Transition(ActionInProgress, now))
		require.NoError(t, item.Transition(ActionCompleted, now))
		assert.Equal(t, ActionCompleted, item.Status)
		require.NotNil(t, item.CompletedAt)
		assert.Equal(t, now, *item.CompletedAt)
	})

	t.Run("pending can be dismissed", func(t *testing.T) {
		item := LeadActionItem{Status: ActionPending}
		require.NoError(t, item.Transition(ActionDismissed, now))
		assert.Equal(t, ActionDismissed, item.Status)
		assert.Nil(t, item.CompletedAt)
	})

	t.Run("in_progress can pause back to pending", func(t *testing.T) {
		item := LeadActionItem{Status: ActionInProgress}
		require.NoError(t, item.Transition(ActionPending, now))
		assert.Equal(t, ActionPending, item.Status)
	})

	t.Run("invalid transitions leave state untouched", func(t *testing.T) {
		cases := []struct {
			from ActionStatus
			to   ActionStatus
		}{
			{ActionPending, ActionCompleted},
			{ActionCompleted, ActionPending},
			{ActionCompleted, ActionInProgress},
			{ActionDismissed, ActionInProgress},
			{ActionDismissed, ActionCompleted},
			{ActionInProgress, ActionDismissed},
		}
		for _, tc := range cases {
			item := LeadActionItem{Status: tc.from}
			err := item.Transition(tc.to, now)
			assert.Error(t, err, "%s -> %s must be rejected", tc.from, tc.to)
			assert.Equal(t, tc.from, item.Status)
			assert.Nil(t, item.CompletedAt)
		}
	})
}
