package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"docit/internal/domain/services"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 5 * time.Second
)

// EventsHandler streams change notifications over a WebSocket
type EventsHandler struct {
	subscriber services.EventSubscriber
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler. Origins are checked by
// the CORS layer and the bearer token, so the upgrader accepts any origin.
func NewEventsHandler(subscriber services.EventSubscriber, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Stream upgrades the request and writes the caller's events as JSON
// until the client goes away
// GET /api/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// the request context is not cancelled when a hijacked client leaves
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	events, unsubscribe := h.subscriber.Subscribe(ctx, session.UserID)
	defer unsubscribe()

	h.logger.Info("event stream opened", "user_id", session.UserID)
	defer h.logger.Info("event stream closed", "user_id", session.UserID)

	conn.SetReadLimit(512)

	// clients only send control frames; a read error means they left
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("event write failed", "user_id", session.UserID, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
