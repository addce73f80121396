package transcript

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"docit/internal/domain/models/llm"
	llmRepo "docit/internal/domain/repositories/llm"
)

// MemoryStore keeps transcripts in a bounded in-process LRU. Used when no
// REDIS_URL is configured; transcripts are lost on restart.
type MemoryStore struct {
	mu          sync.Mutex
	cache       *expirable.LRU[string, []llm.ChatMessage]
	maxMessages int
}

var _ llmRepo.TranscriptStore = (*MemoryStore)(nil)

// NewMemoryStore holds up to size users' transcripts, each expiring ttl
// after its last write. A zero ttl never expires.
func NewMemoryStore(size int, ttl time.Duration, maxMessages int) *MemoryStore {
	if size <= 0 {
		size = 1024
	}
	return &MemoryStore{
		cache:       expirable.NewLRU[string, []llm.ChatMessage](size, nil, ttl),
		maxMessages: maxMessages,
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) ([]llm.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, _ := s.cache.Get(userID)
	out := make([]llm.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, userID string, messages ...llm.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.cache.Get(userID)
	next := make([]llm.ChatMessage, 0, len(current)+len(messages))
	next = append(next, current...)
	next = append(next, messages...)
	if s.maxMessages > 0 && len(next) > s.maxMessages {
		next = next[len(next)-s.maxMessages:]
	}
	s.cache.Add(userID, next)
	return nil
}

func (s *MemoryStore) PopLast(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.cache.Get(userID)
	if !ok || len(current) == 0 {
		return nil
	}
	s.cache.Add(userID, current[:len(current)-1:len(current)-1])
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(userID)
	return nil
}
