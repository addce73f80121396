package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"docit/internal/domain/models"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubDeliversOnlyToOwner(t *testing.T) {
	hub := newTestHub()
	ctx := context.Background()

	mine, cancelMine := hub.Subscribe(ctx, "u1")
	defer cancelMine()
	theirs, cancelTheirs := hub.Subscribe(ctx, "u2")
	defer cancelTheirs()

	hub.Publish(models.ChangeEvent{Type: models.ChangeCreated, Entity: models.EntityFolder, UserID: "u1", FolderID: "f1"})

	select {
	case ev := <-mine:
		if ev.FolderID != "f1" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("owner did not receive the event")
	}

	select {
	case ev := <-theirs:
		t.Fatalf("other user received %+v", ev)
	default:
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := newTestHub()
	_, cancel := hub.Subscribe(context.Background(), "u1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(models.ChangeEvent{UserID: "u1", Entity: models.EntityItem})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a subscriber that never reads")
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := newTestHub()
	ctx, cancelCtx := context.WithCancel(context.Background())

	ch, cancel := hub.Subscribe(ctx, "u1")
	if hub.SubscriberCount("u1") != 1 {
		t.Fatalf("expected one subscriber")
	}

	cancelCtx()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("context cancel did not close the stream")
	}

	// second cancel is a no-op
	cancel()
	if hub.SubscriberCount("u1") != 0 {
		t.Errorf("expected no subscribers, got %d", hub.SubscriberCount("u1"))
	}

	// publishing after unsubscribe must not panic on the closed channel
	hub.Publish(models.ChangeEvent{UserID: "u1"})
}
