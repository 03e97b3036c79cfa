package stores

import (
	"sync"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// AlertsStore holds hot-lead alerts and lead action items. Alerts are
// append-only except for the explicit read/actioned flags; action item
// state changes go through intel.LeadActionItem.Transition.
type AlertsStore struct {
	alerts     map[string]*intel.HotLeadAlert
	alertOrder []string
	items      map[string]*intel.LeadActionItem
	itemOrder  []string
	mu         sync.RWMutex
	logger     *logging.ChanneledLogger
}

// NewAlertsStore creates a new alert/action registry store
func NewAlertsStore(logger *logging.ChanneledLogger) *AlertsStore {
	if logger != nil {
		logger.Cache().Info("Initializing alerts registry store")
	}
	return &AlertsStore{
		alerts: make(map[string]*intel.HotLeadAlert),
		items:  make(map[string]*intel.LeadActionItem),
		logger: logger,
	}
}

// AddAlert stores a new hot-lead alert.
func (as *AlertsStore) AddAlert(alert *intel.HotLeadAlert) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.alerts[alert.ID] = alert
	as.alertOrder = append(as.alertOrder, alert.ID)

	if as.logger != nil {
		as.logger.Cache().Debug("Cache operation", "operation", "set", "type", "alert", "alertId", alert.ID, "visitorId", alert.VisitorID)
	}
}

// GetAlert retrieves one alert by ID.
func (as *AlertsStore) GetAlert(alertID string) (*intel.HotLeadAlert, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	alert, found := as.alerts[alertID]
	return alert, found
}

// AllAlerts returns every alert, oldest first.
func (as *AlertsStore) AllAlerts() []*intel.HotLeadAlert {
	as.mu.RLock()
	defer as.mu.RUnlock()

	result := make([]*intel.HotLeadAlert, 0, len(as.alertOrder))
	for _, id := range as.alertOrder {
		if alert, ok := as.alerts[id]; ok {
			result = append(result, alert)
		}
	}
	return result
}

// UnreadCount counts alerts not yet marked read.
func (as *AlertsStore) UnreadCount() int {
	as.mu.RLock()
	defer as.mu.RUnlock()

	count := 0
	for _, alert := range as.alerts {
		if !alert.Read {
			count++
		}
	}
	return count
}

// MarkAlertRead sets the read flag. Returns false for unknown IDs.
func (as *AlertsStore) MarkAlertRead(alertID string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	alert, found := as.alerts[alertID]
	if !found {
		return false
	}
	alert.Read = true
	return true
}

// MarkAlertActioned sets the actioned flag. Returns false for unknown IDs.
func (as *AlertsStore) MarkAlertActioned(alertID string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	alert, found := as.alerts[alertID]
	if !found {
		return false
	}
	alert.Actioned = true
	return true
}

// AlertsSince returns alerts created at or after the cutoff, oldest first.
func (as *AlertsStore) AlertsSince(cutoff time.Time) []*intel.HotLeadAlert {
	as.mu.RLock()
	defer as.mu.RUnlock()

	var result []*intel.HotLeadAlert
	for _, id := range as.alertOrder {
		if alert, ok := as.alerts[id]; ok && !alert.Timestamp.Before(cutoff) {
			result = append(result, alert)
		}
	}
	return result
}

// AddActionItem stores a new lead action item.
func (as *AlertsStore) AddActionItem(item *intel.LeadActionItem) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.items[item.ID] = item
	as.itemOrder = append(as.itemOrder, item.ID)

	if as.logger != nil {
		as.logger.Cache().Debug("Cache operation", "operation", "set", "type", "action_item", "itemId", item.ID, "visitorId", item.VisitorID, "priority", string(item.Priority))
	}
}

// GetActionItem retrieves one action item by ID.
func (as *AlertsStore) GetActionItem(itemID string) (*intel.LeadActionItem, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	item, found := as.items[itemID]
	return item, found
}

// AllActionItems returns every action item, oldest first.
func (as *AlertsStore) AllActionItems() []*intel.LeadActionItem {
	as.mu.RLock()
	defer as.mu.RUnlock()

	result := make([]*intel.LeadActionItem, 0, len(as.itemOrder))
	for _, id := range as.itemOrder {
		if item, ok := as.items[id]; ok {
			result = append(result, item)
		}
	}
	return result
}

// ActionItemsForVisitor returns the visitor's action items, oldest first.
func (as *AlertsStore) ActionItemsForVisitor(visitorID string) []*intel.LeadActionItem {
	as.mu.RLock()
	defer as.mu.RUnlock()

	var result []*intel.LeadActionItem
	for _, id := range as.itemOrder {
		if item, ok := as.items[id]; ok && item.VisitorID == visitorID {
			result = append(result, item)
		}
	}
	return result
}

// Counts returns alert and action item totals.
func (as *AlertsStore) Counts() (alerts, items int) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return len(as.alerts), len(as.items)
}
