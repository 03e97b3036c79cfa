package cleanup

import (
	"context"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// Worker periodically evicts finalized sessions past their TTL and caps
// the visitor account registry. Live sessions and the activity ring are
// never touched here; the ring bounds itself.
type Worker struct {
	cacheManager *manager.Manager
	config       *Config
	logger       *logging.ChanneledLogger
}

// NewWorker creates a retention worker.
func NewWorker(cacheManager *manager.Manager, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cacheManager: cacheManager,
		config:       config,
		logger:       logger,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.System().Info("Retention worker started", "interval", w.config.Interval, "sessionTTL", w.config.SessionTTL, "maxAccounts", w.config.MaxVisitorAccounts)

	for {
		select {
		case <-ctx.Done():
			w.logger.Shutdown().Info("Retention worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *Worker) sweep() {
	start := time.Now()

	// eviction reads EndedAt and LastSeen off stored entities, so the
	// sweep runs under the same lock the writers hold
	cutoff := time.Now().UTC().Add(-w.config.SessionTTL)
	var evictedSessions, evictedAccounts int
	w.cacheManager.Mutate(func() {
		evictedSessions = w.cacheManager.Sessions.EvictFinalizedBefore(cutoff)
		evictedAccounts = w.cacheManager.Profiles.CapTo(w.config.MaxVisitorAccounts)
	})

	if evictedSessions > 0 || evictedAccounts > 0 {
		w.cacheManager.InvalidateDashboard()
	}

	w.logger.System().Debug("Retention sweep complete",
		"evictedSessions", evictedSessions,
		"evictedAccounts", evictedAccounts,
		"duration", time.Since(start))
}
