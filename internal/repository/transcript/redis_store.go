// Package transcript provides chat transcript storage backends.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"docit/internal/domain/models/llm"
	llmRepo "docit/internal/domain/repositories/llm"
)

// RedisStore keeps each transcript as a redis list of JSON messages
type RedisStore struct {
	client      *redis.Client
	prefix      string
	ttl         time.Duration
	maxMessages int
}

var _ llmRepo.TranscriptStore = (*RedisStore)(nil)

// NewRedisStore connects to redisURL. Transcripts expire ttl after their
// last write and keep at most maxMessages entries.
func NewRedisStore(redisURL string, ttl time.Duration, maxMessages int) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl, maxMessages), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, maxMessages int) *RedisStore {
	return &RedisStore{
		client:      client,
		prefix:      "transcript:",
		ttl:         ttl,
		maxMessages: maxMessages,
	}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) ([]llm.ChatMessage, error) {
	raw, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	messages := make([]llm.ChatMessage, 0, len(raw))
	for _, entry := range raw {
		var msg llm.ChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal transcript message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *RedisStore) Append(ctx context.Context, userID string, messages ...llm.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal transcript message: %w", err)
		}
		values = append(values, data)
	}

	key := s.key(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if s.maxMessages > 0 {
			pipe.LTrim(ctx, key, int64(-s.maxMessages), -1)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}

func (s *RedisStore) PopLast(ctx context.Context, userID string) error {
	err := s.client.RPop(ctx, s.key(userID)).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("pop transcript message: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
