// Package messaging provides the in-process analytics event bus and the
// SSE fan-out for dashboard clients.
package messaging

import "github.com/AtRiskMedia/wealthstack-go/internal/domain/events"

// Bus is the publish/subscribe surface for analytics events. Emission
// is synchronous; subscriber failures are isolated per callback.
type Bus interface {
	Subscribe(types []events.Type, callback func(events.Event)) string
	Unsubscribe(id string) bool
	Emit(event events.Event)
	SubscriberCount() int
}

// Broadcaster manages SSE client connections and pushes serialized
// events to each connected dashboard.
type Broadcaster interface {
	AddClient() chan string
	RemoveClient(ch chan string)
	BroadcastEvent(event events.Event)
	ClientCount() int
}
