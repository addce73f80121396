package llm

import (
	"fmt"
	"strings"
)

// ModelRef names a model and the provider that serves it
type ModelRef struct {
	Provider string // "anthropic" or "lorem"
	Model    string // model identifier for that provider
}

// ParseModel extracts provider information from a model string
//
// Supported formats:
//   - "claude-haiku-4-5" → {Provider: "anthropic", Model: "claude-haiku-4-5"}
//   - "lorem-fast" → {Provider: "lorem", Model: "lorem-fast"}
//   - "anthropic/claude-haiku-4-5" → {Provider: "anthropic", Model: "claude-haiku-4-5"}
func ParseModel(modelStr string) (*ModelRef, error) {
	modelStr = strings.TrimSpace(modelStr)
	if modelStr == "" {
		return nil, fmt.Errorf("model string cannot be empty")
	}

	if provider, model, ok := strings.Cut(modelStr, "/"); ok {
		if provider == "" || model == "" {
			return nil, fmt.Errorf("invalid model format: %s (expected provider/model)", modelStr)
		}
		return &ModelRef{Provider: provider, Model: model}, nil
	}

	provider := inferProvider(modelStr)
	if provider == "" {
		return nil, fmt.Errorf("unable to infer provider from model: %s", modelStr)
	}

	return &ModelRef{Provider: provider, Model: modelStr}, nil
}

// inferProvider infers the provider from model name prefix
func inferProvider(model string) string {
	modelLower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(modelLower, "claude-"):
		return "anthropic"
	case strings.HasPrefix(modelLower, "lorem-"):
		return "lorem"
	default:
		return ""
	}
}
