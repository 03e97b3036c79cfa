package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// placeTally accumulates interaction counts for one place.
type placeTally struct {
	placeName string
	category  string
	count     int
}

// InteractionsStore is the append-only interaction event log with
// per-place aggregation for exports and dashboards.
type InteractionsStore struct {
	events  []intel.InteractionEvent
	byPlace map[string]*placeTally
	mu      sync.RWMutex
	logger  *logging.ChanneledLogger
}

// NewInteractionsStore creates a new interaction log store
func NewInteractionsStore(logger *logging.ChanneledLogger) *InteractionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing interactions log store")
	}
	return &InteractionsStore{
		byPlace: make(map[string]*placeTally),
		logger:  logger,
	}
}

// Append records one interaction event.
func (is *InteractionsStore) Append(event intel.InteractionEvent) {
	is.mu.Lock()
	defer is.mu.Unlock()

	is.events = append(is.events, event)
	if event.PlaceID != "" {
		tally := is.byPlace[event.PlaceID]
		if tally == nil {
			tally = &placeTally{placeName: event.PlaceName, category: event.PlaceCategory}
			is.byPlace[event.PlaceID] = tally
		}
		tally.count++
	}
}

// All returns a copy of every event in append order.
func (is *InteractionsStore) All() []intel.InteractionEvent {
	is.mu.RLock()
	defer is.mu.RUnlock()

	result := make([]intel.InteractionEvent, len(is.events))
	copy(result, is.events)
	return result
}

// Since returns events at or after the cutoff, in append order.
func (is *InteractionsStore) Since(cutoff time.Time) []intel.InteractionEvent {
	is.mu.RLock()
	defer is.mu.RUnlock()

	var result []intel.InteractionEvent
	for _, event := range is.events {
		if !event.Timestamp.Before(cutoff) {
			result = append(result, event)
		}
	}
	return result
}

// PlaceStats returns per-place interaction counts, most-clicked first.
func (is *InteractionsStore) PlaceStats() []intel.PlaceStat {
	is.mu.RLock()
	defer is.mu.RUnlock()

	result := make([]intel.PlaceStat, 0, len(is.byPlace))
	for placeID, tally := range is.byPlace {
		result = append(result, intel.PlaceStat{
			PlaceID:   placeID,
			PlaceName: tally.placeName,
			Category:  tally.category,
			Clicks:    tally.count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Clicks != result[j].Clicks {
			return result[i].Clicks > result[j].Clicks
		}
		return result[i].PlaceID < result[j].PlaceID
	})
	return result
}

// Count returns the number of logged events.
func (is *InteractionsStore) Count() int {
	is.mu.RLock()
	defer is.mu.RUnlock()
	return len(is.events)
}
