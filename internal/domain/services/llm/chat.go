package llm

import (
	"context"

	"docit/internal/domain/models"
	"docit/internal/domain/models/llm"
)

// SendMessageRequest is a chat prompt from the panel
type SendMessageRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// SendMessageResponse carries the assistant reply and the updated transcript
type SendMessageResponse struct {
	Reply      llm.ChatMessage   `json:"reply"`
	Messages   []llm.ChatMessage `json:"messages"`
	ToolRounds int               `json:"tool_rounds"`
	Model      string            `json:"model"`
}

// SummarizeRequest is the body of the hosted callable
type SummarizeRequest struct {
	Prompt string `json:"prompt"`
}

// SummarizeResponse is the callable's free-text answer
type SummarizeResponse struct {
	Text string `json:"text"`
}

// ChatService runs the assistant. The caller's identity always comes
// from the session; tool arguments naming another user are rejected.
type ChatService interface {
	// GetTranscript returns the transcript, seeding the greeting pair when empty
	GetTranscript(ctx context.Context, session *models.Session) (*llm.Transcript, error)

	// SendMessage appends the prompt and runs the tool loop. A second call
	// while one is pending for the same user fails with domain.ErrConflict.
	SendMessage(ctx context.Context, session *models.Session, req *SendMessageRequest) (*SendMessageResponse, error)

	// ClearTranscript starts a new chat
	ClearTranscript(ctx context.Context, session *models.Session) error

	// Summarize answers a one-shot prompt over the caller's data outline
	Summarize(ctx context.Context, session *models.Session, req *SummarizeRequest) (*SummarizeResponse, error)

	// ListModels returns the models clients may pick
	ListModels() []llm.ModelInfo
}
