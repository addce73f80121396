package transcript

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"docit/internal/domain/models/llm"
	llmRepo "docit/internal/domain/repositories/llm"
)

func setupTestRedis(t *testing.T, maxMessages int) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), time.Hour, maxMessages)
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, s
}

func msg(role llm.Role, text string) llm.ChatMessage {
	return llm.ChatMessage{Role: role, Text: text, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// exerciseStore runs the behavior every backend must share
func exerciseStore(t *testing.T, store llmRepo.TranscriptStore) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get on empty transcript failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(got))
	}

	if err := store.Append(ctx, "u1", llm.GreetingMessages("u1", time.Now())...); err != nil {
		t.Fatalf("Append greeting failed: %v", err)
	}
	if err := store.Append(ctx, "u1", msg(llm.RoleUser, "how many folders?")); err != nil {
		t.Fatalf("Append prompt failed: %v", err)
	}

	got, _ = store.Get(ctx, "u1")
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].Text != "Hello, my userId is u1" {
		t.Errorf("unexpected first message %q", got[0].Text)
	}
	if got[2].Role != llm.RoleUser || got[2].Text != "how many folders?" {
		t.Errorf("unexpected last message %+v", got[2])
	}

	if err := store.PopLast(ctx, "u1"); err != nil {
		t.Fatalf("PopLast failed: %v", err)
	}
	got, _ = store.Get(ctx, "u1")
	if len(got) != 2 || got[1].Role != llm.RoleAssistant {
		t.Fatalf("expected greeting pair after pop, got %+v", got)
	}

	other, _ := store.Get(ctx, "u2")
	if len(other) != 0 {
		t.Errorf("transcripts leaked across users: %+v", other)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, _ = store.Get(ctx, "u1")
	if len(got) != 0 {
		t.Errorf("expected empty transcript after clear, got %d", len(got))
	}

	if err := store.PopLast(ctx, "u1"); err != nil {
		t.Errorf("PopLast on empty transcript should be a no-op, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	store, s := setupTestRedis(t, 0)
	defer store.Close()
	defer s.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	exerciseStore(t, store)
}

func TestRedisStoreTrimsAndExpires(t *testing.T) {
	store, s := setupTestRedis(t, 2)
	defer store.Close()
	defer s.Close()
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		if err := store.Append(ctx, "u1", msg(llm.RoleUser, text)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	got, _ := store.Get(ctx, "u1")
	if len(got) != 2 || got[0].Text != "b" || got[1].Text != "c" {
		t.Fatalf("expected newest two messages, got %+v", got)
	}

	s.FastForward(2 * time.Hour)
	got, _ = store.Get(ctx, "u1")
	if len(got) != 0 {
		t.Errorf("expected transcript to expire, got %d messages", len(got))
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(16, time.Hour, 0))
}

func TestMemoryStoreTrims(t *testing.T) {
	store := NewMemoryStore(16, 0, 2)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_ = store.Append(ctx, "u1", msg(llm.RoleUser, text))
	}
	got, _ := store.Get(ctx, "u1")
	if len(got) != 2 || got[0].Text != "b" {
		t.Fatalf("expected newest two messages, got %+v", got)
	}
}

func TestMemoryStoreEvictsLeastRecent(t *testing.T) {
	store := NewMemoryStore(1, 0, 0)
	ctx := context.Background()
	_ = store.Append(ctx, "u1", msg(llm.RoleUser, "first"))
	_ = store.Append(ctx, "u2", msg(llm.RoleUser, "second"))

	got, _ := store.Get(ctx, "u1")
	if len(got) != 0 {
		t.Errorf("expected u1 to be evicted, got %+v", got)
	}
	got, _ = store.Get(ctx, "u2")
	if len(got) != 1 {
		t.Errorf("expected u2 to remain, got %+v", got)
	}
}
