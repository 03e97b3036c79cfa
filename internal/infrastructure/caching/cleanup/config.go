// Package cleanup provides the background retention worker for the
// in-memory registries.
package cleanup

import (
	"time"

	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// Config controls retention sweep behavior.
type Config struct {
	Interval           time.Duration
	SessionTTL         time.Duration
	MaxVisitorAccounts int
}

// NewConfig builds retention settings from the process configuration.
func NewConfig() *Config {
	return &Config{
		Interval:           config.CleanupInterval,
		SessionTTL:         config.SessionTTL,
		MaxVisitorAccounts: config.MaxVisitorAccounts,
	}
}
