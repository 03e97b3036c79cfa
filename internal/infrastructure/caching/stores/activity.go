package stores

import (
	"sync"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// ActivityStore is the capacity-bounded activity feed. It keeps the
// most recent entries in a fixed-size ring; older entries fall off.
type ActivityStore struct {
	items    []intel.ActivityItem
	head     int
	size     int
	capacity int
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewActivityStore creates an activity feed bounded to capacity entries.
func NewActivityStore(capacity int, logger *logging.ChanneledLogger) *ActivityStore {
	if capacity <= 0 {
		capacity = 200
	}
	if logger != nil {
		logger.Cache().Info("Initializing activity feed store", "capacity", capacity)
	}
	return &ActivityStore{
		items:    make([]intel.ActivityItem, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Append adds one item to the feed, displacing the oldest when full.
func (as *ActivityStore) Append(item intel.ActivityItem) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.items[(as.head+as.size)%as.capacity] = item
	if as.size < as.capacity {
		as.size++
	} else {
		as.head = (as.head + 1) % as.capacity
	}
}

// Recent returns up to n items, newest first.
func (as *ActivityStore) Recent(n int) []intel.ActivityItem {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if n <= 0 || n > as.size {
		n = as.size
	}
	result := make([]intel.ActivityItem, 0, n)
	for i := 0; i < n; i++ {
		idx := (as.head + as.size - 1 - i) % as.capacity
		result = append(result, as.items[idx])
	}
	return result
}

// All returns every retained item, oldest first.
func (as *ActivityStore) All() []intel.ActivityItem {
	as.mu.RLock()
	defer as.mu.RUnlock()

	result := make([]intel.ActivityItem, 0, as.size)
	for i := 0; i < as.size; i++ {
		result = append(result, as.items[(as.head+i)%as.capacity])
	}
	return result
}

// Len returns the number of retained items.
func (as *ActivityStore) Len() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.size
}
