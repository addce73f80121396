// Package events fans change notifications out to each user's live
// connections.
package events

import (
	"context"
	"log/slog"
	"sync"

	"docit/internal/domain/models"
	"docit/internal/domain/services"
)

// subscriberBuffer is how many events a slow subscriber may lag behind
// before new events are dropped for it
const subscriberBuffer = 32

type subscriber struct {
	ch chan models.ChangeEvent
}

// Hub is an in-process publish/subscribe hub keyed by user id
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	logger      *slog.Logger
}

var (
	_ services.EventPublisher  = (*Hub)(nil)
	_ services.EventSubscriber = (*Hub)(nil)
)

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		logger:      logger,
	}
}

// Publish delivers event to the user's subscribers without blocking.
// A subscriber whose buffer is full misses the event.
func (h *Hub) Publish(event models.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[event.UserID] {
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn("event dropped for slow subscriber",
				"user_id", event.UserID,
				"entity", event.Entity,
				"type", event.Type,
			)
		}
	}
}

// Subscribe registers a stream for userID. The stream is closed by the
// returned cancel func or when ctx ends, whichever comes first.
func (h *Hub) Subscribe(ctx context.Context, userID string) (<-chan models.ChangeEvent, func()) {
	sub := &subscriber{ch: make(chan models.ChangeEvent, subscriberBuffer)}

	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[*subscriber]struct{})
	}
	h.subscribers[userID][sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("event subscriber registered", "user_id", userID)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], sub)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(sub.ch)
			h.logger.Debug("event subscriber removed", "user_id", userID)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return sub.ch, cancel
}

// SubscriberCount reports live subscriptions for userID
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
