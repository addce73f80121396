package services

import (
	"context"

	"docit/internal/domain/models"
)

// EventPublisher delivers change notifications to a user's subscribers.
// Publish never blocks on slow subscribers.
type EventPublisher interface {
	Publish(event models.ChangeEvent)
}

// EventSubscriber hands out per-user event streams. The returned cancel
// func must be called to release the subscription.
type EventSubscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan models.ChangeEvent, func())
}
