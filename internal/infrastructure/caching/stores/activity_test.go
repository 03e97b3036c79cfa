package stores

import (
	"fmt"
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityItem(n int) intel.ActivityItem {
	return intel.ActivityItem{
		ID:        fmt.Sprintf("item-%03d", n),
		Type:      intel.ActivityMessageSent,
		Timestamp: time.Now().UTC(),
		Title:     fmt.Sprintf("item %d", n),
	}
}

func TestActivityStoreBoundedRing(t *testing.T) {
	store := NewActivityStore(5, nil)

	for i := 0; i < 8; i++ {
		store.Append(activityItem(i))
	}

	assert.Equal(t, 5, store.Len(), "feed never exceeds its capacity")

	all := store.All()
	require.Len(t, all, 5)
	assert.Equal(t, "item-003", all[0].ID, "oldest retained entry")
	assert.Equal(t, "item-007", all[4].ID, "newest entry")
}

func TestActivityStoreRecentNewestFirst(t *testing.T) {
	store := NewActivityStore(10, nil)
	for i := 0; i < 4; i++ {
		store.Append(activityItem(i))
	}

	recent := store.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "item-003", recent[0].ID)
	assert.Equal(t, "item-002", recent[1].ID)

	assert.Len(t, store.Recent(0), 4, "zero limit returns everything")
	assert.Len(t, store.Recent(100), 4, "limit larger than feed is clamped")
}

func TestActivityStoreDefaultCapacity(t *testing.T) {
	store := NewActivityStore(0, nil)
	for i := 0; i < 250; i++ {
		store.Append(activityItem(i))
	}
	assert.Equal(t, 200, store.Len())
}
