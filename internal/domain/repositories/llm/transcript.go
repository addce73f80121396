package llm

import (
	"context"

	"docit/internal/domain/models/llm"
)

// TranscriptStore keeps each user's chat transcript.
type TranscriptStore interface {
	// Get returns the transcript oldest first; empty when none exists
	Get(ctx context.Context, userID string) ([]llm.ChatMessage, error)

	// Append adds messages to the end of the transcript
	Append(ctx context.Context, userID string, messages ...llm.ChatMessage) error

	// PopLast removes the newest message; no-op on an empty transcript
	PopLast(ctx context.Context, userID string) error

	// Clear deletes the transcript (new chat)
	Clear(ctx context.Context, userID string) error
}
