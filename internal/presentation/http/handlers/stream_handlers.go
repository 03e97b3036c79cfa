package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var activeSSEConnections int64

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandlers serves the live dashboard feeds: SSE for event frames
// and WebSocket for the activity stream.
type StreamHandlers struct {
	broadcaster     messaging.Broadcaster
	bus             messaging.Bus
	activityService *services.ActivityService
	logger          *logging.ChanneledLogger
}

// NewStreamHandlers creates stream handlers with injected dependencies
func NewStreamHandlers(broadcaster messaging.Broadcaster, bus messaging.Bus, activityService *services.ActivityService, logger *logging.ChanneledLogger) *StreamHandlers {
	return &StreamHandlers{
		broadcaster:     broadcaster,
		bus:             bus,
		activityService: activityService,
		logger:          logger,
	}
}

// GetSSE handles GET /api/v1/stream
func (h *StreamHandlers) GetSSE(c *gin.Context) {
	current := atomic.LoadInt64(&activeSSEConnections)
	if current >= int64(config.MaxSSEConnections) {
		h.logger.SSE().Warn("SSE connection limit reached", "currentConnections", current, "maxConnections", config.MaxSSEConnections)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SSE connection limit reached. Please try again later."})
		return
	}

	connID, err := security.GenerateSecureToken(9)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish stream"})
		return
	}
	h.logger.SSE().Debug("Starting SSE connection setup", "connId", connID, "currentConnections", current)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	client := h.broadcaster.AddClient()
	atomic.AddInt64(&activeSSEConnections, 1)
	defer func() {
		atomic.AddInt64(&activeSSEConnections, -1)
		h.broadcaster.RemoveClient(client)
		h.logger.SSE().Debug("SSE connection closed", "connId", connID)
	}()

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"timestamp\":%q}\n\n", time.Now().UTC().Format(time.RFC3339))
	c.Writer.Flush()

	heartbeat := time.NewTicker(time.Duration(config.SSEHeartbeatIntervalSeconds) * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case frame, open := <-client:
			if !open {
				return
			}
			fmt.Fprint(c.Writer, frame)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

// wsEnvelope is the frame format pushed over the activity WebSocket.
type wsEnvelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// GetActivityWS handles GET /ws/activity
func (h *StreamHandlers) GetActivityWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.SSE().Error("WebSocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	// replay the recent feed so the client renders immediately
	backlog := h.activityService.Recent(25)
	if err := conn.WriteJSON(wsEnvelope{
		Type:      "activity_backlog",
		Payload:   backlog,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return
	}

	frames := make(chan wsEnvelope, 32)
	subscriptionID := h.bus.Subscribe(events.AllTypes, func(event events.Event) {
		envelope := wsEnvelope{
			Type:      string(event.EventType()),
			Payload:   event,
			Timestamp: event.OccurredAt().UTC().Format(time.RFC3339),
		}
		select {
		case frames <- envelope:
		default:
			// slow client, drop the frame
		}
	})
	defer h.bus.Unsubscribe(subscriptionID)

	h.logger.SSE().Info("Activity WebSocket connected", "subscriptionId", subscriptionID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	heartbeat := time.NewTicker(time.Duration(config.SSEHeartbeatIntervalSeconds) * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case envelope := <-frames:
			payload, err := json.Marshal(envelope)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
