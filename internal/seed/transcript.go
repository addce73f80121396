package seed

import (
	"context"
	"fmt"
	"time"

	"docit/internal/domain/models/llm"
	llmRepo "docit/internal/domain/repositories/llm"
)

// SeedTranscript starts the demo user's chat with the greeting pair, the
// same way the assistant seeds an empty transcript
func SeedTranscript(ctx context.Context, store llmRepo.TranscriptStore, userID string) error {
	if err := store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	if err := store.Append(ctx, userID, llm.GreetingMessages(userID, time.Now())...); err != nil {
		return fmt.Errorf("seed transcript: %w", err)
	}
	return nil
}
