package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"docit/internal/domain/models/llm"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Providers whose capability files ship with the binary, in listing order.
var embeddedProviders = []string{"anthropic", "lorem"}

// Registry manages model capabilities across all providers
type Registry struct {
	providers map[string]*ProviderCapabilities
	order     []string
	mu        sync.RWMutex
}

// NewRegistry creates a new capability registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderCapabilities),
	}

	for _, provider := range embeddedProviders {
		data, err := configFiles.ReadFile(fmt.Sprintf("config/%s.yaml", provider))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s capabilities: %w", provider, err)
		}
		if err := r.Load(provider, data); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Load parses a provider capability file and registers it.
func (r *Registry) Load(provider string, data []byte) error {
	var providerCaps ProviderCapabilities
	if err := yaml.Unmarshal(data, &providerCaps); err != nil {
		return fmt.Errorf("failed to unmarshal %s capabilities: %w", provider, err)
	}
	if providerCaps.Provider == "" {
		providerCaps.Provider = provider
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[provider]; !exists {
		r.order = append(r.order, provider)
	}
	r.providers[provider] = &providerCaps
	return nil
}

// GetModelCapabilities returns capabilities for a specific model
func (r *Registry) GetModelCapabilities(provider, model string) (*ModelCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providerCaps, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	for i := range providerCaps.Models {
		if providerCaps.Models[i].ID == model {
			return &providerCaps.Models[i], nil
		}
	}

	return nil, fmt.Errorf("unknown model %s for provider %s", model, provider)
}

// FindModel looks a model up across all providers.
func (r *Registry) FindModel(model string) (string, *ModelCapabilities, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, provider := range r.order {
		caps := r.providers[provider]
		for i := range caps.Models {
			if caps.Models[i].ID == model {
				return provider, &caps.Models[i], true
			}
		}
	}
	return "", nil, false
}

// ListModels flattens the registry for GET /api/models. Only providers in
// enabled are listed; defaultModel is flagged.
func (r *Registry) ListModels(enabled map[string]bool, defaultModel string) []llm.ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []llm.ModelInfo
	for _, provider := range r.order {
		if !enabled[provider] {
			continue
		}
		for _, m := range r.providers[provider].Models {
			out = append(out, llm.ModelInfo{
				ID:            m.ID,
				DisplayName:   m.DisplayName,
				Provider:      provider,
				SupportsTools: m.SupportsTools,
				ContextWindow: m.ContextWindow,
				Default:       m.ID == defaultModel,
			})
		}
	}
	return out
}
