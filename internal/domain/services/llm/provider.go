package llm

import (
	"context"

	"docit/internal/domain/models/llm"
)

// LLMProvider defines the interface that all LLM providers must implement.
type LLMProvider interface {
	// GenerateResponse performs one blocking generation.
	GenerateResponse(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Name returns the provider name (e.g., "anthropic", "lorem")
	Name() string

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// GenerateRequest contains the parameters for an LLM generation request.
type GenerateRequest struct {
	// Model is the model identifier (e.g., "claude-haiku-4-5-20251001")
	Model string

	// System is the system prompt; empty means none
	System string

	// Messages contains the conversation history, oldest first.
	Messages []Message

	// Tools the model may call. Empty forces a plain text answer.
	Tools []llm.ToolDefinition

	// DisableToolUse keeps Tools described but forbids calling them, for
	// the final answer of a conversation that already contains tool traffic.
	DisableToolUse bool

	MaxTokens int
}

// Message represents a single message in the conversation.
type Message struct {
	// Role is either "user" or "assistant"
	Role llm.Role

	Content []*llm.ContentBlock
}

// GenerateResponse contains the LLM provider's response.
type GenerateResponse struct {
	Content []*llm.ContentBlock

	// Model is the model that was used (may differ from request if aliased)
	Model string

	InputTokens  int
	OutputTokens int

	// StopReason indicates why generation stopped ("end_turn", "tool_use", "max_tokens")
	StopReason string
}

// Text concatenates the text blocks of the response.
func (r *GenerateResponse) Text() string {
	var out string
	for _, block := range r.Content {
		if block.BlockType == llm.BlockTypeText {
			out += block.Text
		}
	}
	return out
}

// ToolUses returns the tool requests in the response, in order.
func (r *GenerateResponse) ToolUses() []*llm.ContentBlock {
	var uses []*llm.ContentBlock
	for _, block := range r.Content {
		if block.BlockType == llm.BlockTypeToolUse {
			uses = append(uses, block)
		}
	}
	return uses
}

// ResolvedModel is a model id bound to the provider that serves it.
type ResolvedModel struct {
	Provider      LLMProvider
	Model         string
	SupportsTools bool
	MaxOutput     int
}

// ModelResolver maps client-chosen model ids onto configured providers.
type ModelResolver interface {
	// ResolveModel returns domain.ErrValidation for unknown or unavailable models
	ResolveModel(model string) (*ResolvedModel, error)

	// ListModels returns the models of configured providers, flagging defaultModel
	ListModels(defaultModel string) []llm.ModelInfo
}
