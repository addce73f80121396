package llm

import (
	"fmt"
	"sync"

	"docit/internal/capabilities"
	"docit/internal/domain"
	"docit/internal/domain/models/llm"
	domainllm "docit/internal/domain/services/llm"
)

// ProviderRegistry routes model ids to providers. Providers are created
// lazily by the factory and cached.
type ProviderRegistry struct {
	factory      *ProviderFactory
	capabilities *capabilities.Registry
	cache        map[string]domainllm.LLMProvider
	mu           sync.RWMutex
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry(factory *ProviderFactory, caps *capabilities.Registry) *ProviderRegistry {
	return &ProviderRegistry{
		factory:      factory,
		capabilities: caps,
		cache:        make(map[string]domainllm.LLMProvider),
	}
}

// GetProvider returns the provider with the given name, creating it on
// first use.
func (r *ProviderRegistry) GetProvider(provider string) (domainllm.LLMProvider, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	r.mu.RLock()
	if cached, exists := r.cache[provider]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// another goroutine may have created it while we waited
	if cached, exists := r.cache[provider]; exists {
		return cached, nil
	}

	created, err := r.factory.GetProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", provider, err)
	}
	r.cache[provider] = created
	return created, nil
}

// ResolveModel implements domainllm.ModelResolver.
func (r *ProviderRegistry) ResolveModel(model string) (*domainllm.ResolvedModel, error) {
	ref, err := ParseModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	caps, err := r.capabilities.GetModelCapabilities(ref.Provider, ref.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	provider, err := r.GetProvider(ref.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: model %s is not available: %v", domain.ErrValidation, ref.Model, err)
	}

	return &domainllm.ResolvedModel{
		Provider:      provider,
		Model:         ref.Model,
		SupportsTools: caps.SupportsTools,
		MaxOutput:     caps.MaxOutput,
	}, nil
}

// ListModels implements domainllm.ModelResolver.
func (r *ProviderRegistry) ListModels(defaultModel string) []llm.ModelInfo {
	models := r.capabilities.ListModels(r.factory.Available(), defaultModel)
	if models == nil {
		models = []llm.ModelInfo{}
	}
	return models
}

// Validate checks if the registry is properly configured.
// Should be called at startup to fail fast if misconfigured.
func (r *ProviderRegistry) Validate(defaultModel string) error {
	if r.factory == nil || r.capabilities == nil {
		return fmt.Errorf("provider registry is not configured")
	}
	if _, err := r.ResolveModel(defaultModel); err != nil {
		return fmt.Errorf("default model: %w", err)
	}
	return nil
}
