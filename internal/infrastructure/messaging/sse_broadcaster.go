package messaging

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// SSEBroadcaster fans serialized analytics events out to connected SSE
// clients. A slow client's full channel drops messages for that client
// only.
type SSEBroadcaster struct {
	clients map[chan string]bool
	mu      sync.Mutex
	logger  *logging.ChanneledLogger
}

// NewSSEBroadcaster creates an SSE broadcaster with no clients.
func NewSSEBroadcaster(logger *logging.ChanneledLogger) *SSEBroadcaster {
	return &SSEBroadcaster{
		clients: make(map[chan string]bool),
		logger:  logger,
	}
}

// AddClient registers a new SSE client and returns its message channel.
func (b *SSEBroadcaster) AddClient() chan string {
	ch := make(chan string, 32)

	b.mu.Lock()
	b.clients[ch] = true
	b.mu.Unlock()

	b.logger.SSE().Debug("SSE client registered", "clients", b.ClientCount())
	return ch
}

// RemoveClient unregisters an SSE client and closes its channel.
func (b *SSEBroadcaster) RemoveClient(ch chan string) {
	b.mu.Lock()
	if b.clients[ch] {
		delete(b.clients, ch)
		close(ch)
	}
	b.mu.Unlock()

	b.logger.SSE().Debug("SSE client unregistered", "clients", b.ClientCount())
}

// BroadcastEvent serializes the event as an SSE frame and pushes it to
// every connected client.
func (b *SSEBroadcaster) BroadcastEvent(event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.SSE().Error("Panic recovered in BroadcastEvent", "error", r, "eventType", string(event.EventType()))
		}
	}()

	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.SSE().Error("Failed to serialize event for SSE", "error", err.Error(), "eventType", string(event.EventType()))
		return
	}
	message := fmt.Sprintf("event: %s\ndata: %s\n\n", event.EventType(), payload)

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.clients {
		select {
		case ch <- message:
		default:
			b.logger.SSE().Warn("SSE channel full, message dropped", "eventType", string(event.EventType()))
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *SSEBroadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
