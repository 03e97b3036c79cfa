package messaging

import (
	"sync"
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionEvent(visitorID string) events.NewSession {
	return events.NewSession{
		SessionID: "sess-" + visitorID,
		VisitorID: visitorID,
		Timestamp: time.Now().UTC(),
	}
}

func TestBusDeliversToMatchingSubscribers(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	var received []events.Event
	bus.Subscribe([]events.Type{events.TypeNewSession}, func(e events.Event) {
		received = append(received, e)
	})

	bus.Emit(newSessionEvent("v1"))
	bus.Emit(events.SessionEnd{SessionID: "s1", VisitorID: "v1", Timestamp: time.Now()})

	require.Len(t, received, 1)
	assert.Equal(t, events.TypeNewSession, received[0].EventType())
}

func TestBusFanOutDeliversExactlyOncePerSubscriber(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	counts := make([]int, 5)
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(events.AllTypes, func(events.Event) {
			counts[i]++
		})
	}

	bus.Emit(newSessionEvent("v1"))

	for i, count := range counts {
		assert.Equal(t, 1, count, "subscriber %d", i)
	}
}

func TestBusIsolatesPanickingSubscriber(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	healthy := 0
	bus.Subscribe(events.AllTypes, func(events.Event) {
		panic("subscriber exploded")
	})
	bus.Subscribe(events.AllTypes, func(events.Event) {
		healthy++
	})

	assert.NotPanics(t, func() {
		bus.Emit(newSessionEvent("v1"))
	})
	assert.Equal(t, 1, healthy, "healthy subscriber keeps receiving after a sibling panics")

	bus.Emit(newSessionEvent("v2"))
	assert.Equal(t, 2, healthy)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	count := 0
	id := bus.Subscribe(events.AllTypes, func(events.Event) { count++ })

	bus.Emit(newSessionEvent("v1"))
	require.Equal(t, 1, count)

	assert.True(t, bus.Unsubscribe(id))
	bus.Emit(newSessionEvent("v2"))
	assert.Equal(t, 1, count)

	assert.False(t, bus.Unsubscribe(id), "second unsubscribe reports not found")
	assert.False(t, bus.Unsubscribe("no-such-id"))
}

func TestBusSubscriberCount(t *testing.T) {
	bus := NewAnalyticsBus(nil)
	assert.Equal(t, 0, bus.SubscriberCount())

	id := bus.Subscribe(events.AllTypes, func(events.Event) {})
	bus.Subscribe([]events.Type{events.TypeHotLeadAlert}, func(events.Event) {})
	assert.Equal(t, 2, bus.SubscriberCount())

	bus.Unsubscribe(id)
	assert.Equal(t, 1, bus.SubscriberCount())
}

func TestBusConcurrentEmitAndSubscribe(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	var mu sync.Mutex
	total := 0
	bus.Subscribe(events.AllTypes, func(events.Event) {
		mu.Lock()
		total++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Emit(newSessionEvent("c"))
		}()
		go func() {
			defer wg.Done()
			id := bus.Subscribe([]events.Type{events.TypeTierChange}, func(events.Event) {})
			bus.Unsubscribe(id)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, total)
}

func TestBusCarriesTypedPayloads(t *testing.T) {
	bus := NewAnalyticsBus(nil)

	var got intel.WealthSignal
	bus.Subscribe([]events.Type{events.TypeSignalDetected}, func(e events.Event) {
		detected, ok := e.(events.SignalDetected)
		require.True(t, ok)
		got = detected.Signal
	})

	bus.Emit(events.SignalDetected{
		SessionID: "s1",
		VisitorID: "v1",
		Signal: intel.WealthSignal{
			Category: intel.SignalTravelAviation,
			Type:     "private_aviation",
			Evidence: "fly private",
			Weight:   8,
		},
		Timestamp: time.Now(),
	})

	assert.Equal(t, "private_aviation", got.Type)
	assert.Equal(t, intel.SignalTravelAviation, got.Category)
}
