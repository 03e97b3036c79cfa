// Package manager provides the unified facade over the registry stores.
package manager

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/types"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// Manager composes the registry stores behind a single facade. It is
// the sole writer surface for sessions, visitor accounts, interactions,
// alerts, and the activity feed.
type Manager struct {
	Sessions     *stores.SessionsStore
	Profiles     *stores.ProfilesStore
	Interactions *stores.InteractionsStore
	Alerts       *stores.AlertsStore
	Activity     *stores.ActivityStore

	dashboard   *types.DashboardCacheEntry
	dashboardMu sync.RWMutex

	// state guards the contents of stored entities. The store maps have
	// their own locks; state covers mutation of a session, account,
	// alert, or action item after it has been stored, and the scans
	// that read those entities.
	state sync.RWMutex

	logger *logging.ChanneledLogger
}

// Mutate runs fn holding the entity-state write lock. Every path that
// modifies a stored entity goes through here.
func (m *Manager) Mutate(fn func()) {
	m.state.Lock()
	defer m.state.Unlock()
	fn()
}

// View runs fn holding the entity-state read lock, for scans that read
// entity contents: dashboard builds, exports, and API reads.
func (m *Manager) View(fn func()) {
	m.state.RLock()
	defer m.state.RUnlock()
	fn()
}

// NewManager creates the registry manager with all stores initialized.
func NewManager(activityCapacity int, logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		Sessions:     stores.NewSessionsStore(logger),
		Profiles:     stores.NewProfilesStore(logger),
		Interactions: stores.NewInteractionsStore(logger),
		Alerts:       stores.NewAlertsStore(logger),
		Activity:     stores.NewActivityStore(activityCapacity, logger),
		logger:       logger,
	}
}

// GetDashboard returns the cached dashboard snapshot if still fresh.
func (m *Manager) GetDashboard(ttl time.Duration) (*intel.DashboardSnapshot, string, bool) {
	m.dashboardMu.RLock()
	defer m.dashboardMu.RUnlock()

	if !m.dashboard.IsFresh(ttl) {
		return nil, "", false
	}
	return m.dashboard.Snapshot, m.dashboard.ETag, true
}

// SetDashboard stores a freshly computed dashboard snapshot.
func (m *Manager) SetDashboard(snapshot *intel.DashboardSnapshot, etag string) {
	m.dashboardMu.Lock()
	defer m.dashboardMu.Unlock()

	m.dashboard = &types.DashboardCacheEntry{
		Snapshot:   snapshot,
		ETag:       etag,
		ComputedAt: time.Now().UTC(),
	}
}

// InvalidateDashboard drops the cached snapshot.
func (m *Manager) InvalidateDashboard() {
	m.dashboardMu.Lock()
	defer m.dashboardMu.Unlock()
	m.dashboard = nil
}

// Summary reports per-store sizes for diagnostics.
func (m *Manager) Summary() types.RegistrySummary {
	alerts, items := m.Alerts.Counts()
	return types.RegistrySummary{
		Sessions:     m.Sessions.Count(),
		Accounts:     m.Profiles.Count(),
		Interactions: m.Interactions.Count(),
		Alerts:       alerts,
		ActionItems:  items,
		ActivityFeed: m.Activity.Len(),
	}
}
