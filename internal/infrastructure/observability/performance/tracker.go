package performance

import (
	"sync"
	"time"
)

// Tracker manages performance markers and aggregates per-operation stats.
type Tracker struct {
	markers    []*Marker
	maxMarkers int
	mu         sync.RWMutex
	started    time.Time
}

// NewTracker creates a tracker retaining at most maxMarkers recent markers.
func NewTracker(maxMarkers int) *Tracker {
	if maxMarkers <= 0 {
		maxMarkers = 1000
	}
	return &Tracker{
		markers:    make([]*Marker, 0, maxMarkers),
		maxMarkers: maxMarkers,
		started:    time.Now().UTC(),
	}
}

// StartOperation begins a new performance marker for the named operation.
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.markers = append(t.markers, marker)
	if len(t.markers) > t.maxMarkers {
		t.markers = t.markers[len(t.markers)-t.maxMarkers:]
	}

	return marker
}

// OperationStats summarizes retained markers for one operation name.
type OperationStats struct {
	Operation    string        `json:"operation"`
	Count        int           `json:"count"`
	Failures     int           `json:"failures"`
	AvgDuration  time.Duration `json:"avgDuration"`
	MaxDuration  time.Duration `json:"maxDuration"`
	LastDuration time.Duration `json:"lastDuration"`
}

// Stats aggregates completed markers grouped by operation name.
func (t *Tracker) Stats() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]OperationStats)
	totals := make(map[string]time.Duration)

	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		s := stats[m.Operation]
		s.Operation = m.Operation
		s.Count++
		if !m.Success {
			s.Failures++
		}
		totals[m.Operation] += m.Duration
		if m.Duration > s.MaxDuration {
			s.MaxDuration = m.Duration
		}
		s.LastDuration = m.Duration
		stats[m.Operation] = s
	}

	for op, s := range stats {
		if s.Count > 0 {
			s.AvgDuration = totals[op] / time.Duration(s.Count)
			stats[op] = s
		}
	}

	return stats
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
