package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// ProfilesStore implements the visitor account registry.
type ProfilesStore struct {
	accounts map[string]*intel.VisitorAccount
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewProfilesStore creates a new visitor account registry store
func NewProfilesStore(logger *logging.ChanneledLogger) *ProfilesStore {
	if logger != nil {
		logger.Cache().Info("Initializing profiles registry store")
	}
	return &ProfilesStore{
		accounts: make(map[string]*intel.VisitorAccount),
		logger:   logger,
	}
}

// GetAccount retrieves a visitor account by visitor ID
func (ps *ProfilesStore) GetAccount(visitorID string) (*intel.VisitorAccount, bool) {
	start := time.Now()
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	account, found := ps.accounts[visitorID]
	if ps.logger != nil {
		ps.logger.Cache().Debug("Cache operation", "operation", "get", "type", "account", "visitorId", visitorID, "hit", found, "duration", time.Since(start))
	}
	return account, found
}

// SetAccount stores a visitor account
func (ps *ProfilesStore) SetAccount(account *intel.VisitorAccount) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.accounts[account.VisitorID] = account

	if ps.logger != nil {
		ps.logger.Cache().Debug("Cache operation", "operation", "set", "type", "account", "visitorId", account.VisitorID)
	}
}

// AllAccounts returns a point-in-time copy of every account pointer,
// ordered by first-seen time.
func (ps *ProfilesStore) AllAccounts() []*intel.VisitorAccount {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	result := make([]*intel.VisitorAccount, 0, len(ps.accounts))
	for _, account := range ps.accounts {
		result = append(result, account)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FirstSeen.Before(result[j].FirstSeen)
	})
	return result
}

// Count returns the number of visitor accounts held.
func (ps *ProfilesStore) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.accounts)
}

// CapTo evicts oldest-last-seen accounts until at most max remain.
// Returns the number of accounts evicted.
func (ps *ProfilesStore) CapTo(max int) int {
	start := time.Now()
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if max <= 0 || len(ps.accounts) <= max {
		return 0
	}

	ordered := make([]*intel.VisitorAccount, 0, len(ps.accounts))
	for _, account := range ps.accounts {
		ordered = append(ordered, account)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].LastSeen.Before(ordered[j].LastSeen)
	})

	evicted := 0
	for _, account := range ordered[:len(ordered)-max] {
		delete(ps.accounts, account.VisitorID)
		evicted++
	}

	if ps.logger != nil {
		ps.logger.Cache().Warn("Account registry capped", "evicted", evicted, "remaining", len(ps.accounts), "max", max, "duration", time.Since(start))
	}
	return evicted
}
