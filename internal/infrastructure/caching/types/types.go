// Package types defines shared cache structures used by the registry
// stores and the cache manager.
package types

import (
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
)

// DashboardCacheEntry holds one computed dashboard snapshot with its TTL
// bookkeeping and ETag for conditional responses.
type DashboardCacheEntry struct {
	Snapshot   *intel.DashboardSnapshot
	ETag       string
	ComputedAt time.Time
}

// IsFresh reports whether the entry is still within the given TTL.
func (e *DashboardCacheEntry) IsFresh(ttl time.Duration) bool {
	return e != nil && time.Since(e.ComputedAt) < ttl
}

// RegistrySummary reports per-store sizes for diagnostics.
type RegistrySummary struct {
	Sessions     int `json:"sessions"`
	Accounts     int `json:"accounts"`
	Interactions int `json:"interactions"`
	Alerts       int `json:"alerts"`
	ActionItems  int `json:"actionItems"`
	ActivityFeed int `json:"activityFeed"`
}
