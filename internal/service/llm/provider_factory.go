package llm

import (
	"fmt"

	"docit/internal/config"
	domainllm "docit/internal/domain/services/llm"
	"docit/internal/service/llm/providers/anthropic"
	"docit/internal/service/llm/providers/lorem"
)

// ProviderFactory creates provider instances from config
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		config: cfg,
	}
}

// Available reports which providers can be created with the current config.
// Lorem is offered outside prod only.
func (f *ProviderFactory) Available() map[string]bool {
	return map[string]bool{
		"anthropic": f.config.AnthropicAPIKey != "",
		"lorem":     f.config.Environment != "prod",
	}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - Mock provider for development (no API key required)
func (f *ProviderFactory) GetProvider(providerName string) (domainllm.LLMProvider, error) {
	if !f.Available()[providerName] {
		switch providerName {
		case "anthropic":
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		case "lorem":
			return nil, fmt.Errorf("lorem provider is disabled in %s", f.config.Environment)
		default:
			return nil, fmt.Errorf("unsupported provider: %s", providerName)
		}
	}

	switch providerName {
	case "anthropic":
		provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		return provider, nil
	default:
		return lorem.NewProvider(), nil
	}
}
