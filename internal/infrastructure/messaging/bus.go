package messaging

import (
	"sync"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/security"
)

type subscription struct {
	id       string
	types    map[events.Type]bool
	callback func(events.Event)
}

// AnalyticsBus is the concrete in-process event bus. Emit iterates a
// stable snapshot of the subscriber set, so subscribe/unsubscribe calls
// made by callbacks during an emit do not affect that emit's delivery.
type AnalyticsBus struct {
	subscribers map[string]*subscription
	mu          sync.RWMutex
	logger      *logging.ChanneledLogger
}

// NewAnalyticsBus creates an empty bus.
func NewAnalyticsBus(logger *logging.ChanneledLogger) *AnalyticsBus {
	return &AnalyticsBus{
		subscribers: make(map[string]*subscription),
		logger:      logger,
	}
}

// Subscribe registers a callback for the given event types and returns
// the subscription ID used for unsubscribe.
func (b *AnalyticsBus) Subscribe(types []events.Type, callback func(events.Event)) string {
	sub := &subscription{
		id:       security.GenerateULID(),
		types:    make(map[events.Type]bool, len(types)),
		callback: callback,
	}
	for _, t := range types {
		sub.types[t] = true
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Analytics().Debug("Bus subscription added", "subscriptionId", sub.id, "eventTypes", types)
	}
	return sub.id
}

// Unsubscribe removes a subscription. Returns false for unknown IDs.
func (b *AnalyticsBus) Unsubscribe(id string) bool {
	b.mu.Lock()
	_, found := b.subscribers[id]
	delete(b.subscribers, id)
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Analytics().Debug("Bus subscription removed", "subscriptionId", id, "found", found)
	}
	return found
}

// Emit delivers the event synchronously to every subscriber whose type
// set includes the event's type, each exactly once. A panicking
// callback is recovered and logged; it never prevents delivery to the
// remaining subscribers and never propagates to the emitter.
func (b *AnalyticsBus) Emit(event events.Event) {
	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.types[event.EventType()] {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		b.invoke(sub, event)
	}
}

func (b *AnalyticsBus) invoke(sub *subscription, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.logger != nil {
				b.logger.Analytics().Error("Panic recovered in bus subscriber",
					"error", r,
					"subscriptionId", sub.id,
					"eventType", string(event.EventType()))
			}
		}
	}()
	sub.callback(event)
}

// SubscriberCount returns the current number of subscriptions.
func (b *AnalyticsBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
