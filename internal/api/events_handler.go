package api

import (
	"encoding/json"
	"net/http"

	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/config"
)

// EventsHandler streams change notifications to viewers over SSE
type EventsHandler struct {
	broadcaster *broadcast.Broadcaster
	heartbeat   time.Duration
	log         zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(broadcaster *broadcast.Broadcaster, cfg *config.Config, log zerolog.Logger) *EventsHandler {
	heartbeat := cfg.Server.SSEHeartbeat
	if heartbeat <= 0 {
		heartbeat = 10 * time.Second
	}
	return &EventsHandler{
		broadcaster: broadcaster,
		heartbeat:   heartbeat,
		log:         log.With().Str("handler", "events").Logger(),
	}
}

// Stream handles GET /v1/events. Each connection gets a subscriber handle;
// the handle is released as soon as the client goes away so the subscriber
// set cannot grow unbounded. Events are invalidation signals only: a
// client re-fetches current state on connect, there is no replay.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error().Msg("Response writer doesn't support flushing")
		c.String(http.StatusInternalServerError, "Streaming not supported")
		return
	}

	sub := h.broadcaster.Subscribe()
	defer sub.Unsubscribe()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case event, open := <-sub.Events():
			if !open {
				// Dropped by the broadcaster (too far behind) or shutdown
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to marshal event")
				continue
			}
			if _, err := c.Writer.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			// Comment line keeps intermediaries from closing the connection
			if _, err := c.Writer.Write([]byte(": heartbeat\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
