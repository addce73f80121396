package llm

import (
	"errors"
	"testing"

	"docit/internal/capabilities"
	"docit/internal/config"
	"docit/internal/domain"
)

func newTestRegistry(t *testing.T, cfg *config.Config) *ProviderRegistry {
	t.Helper()
	caps, err := capabilities.NewRegistry()
	if err != nil {
		t.Fatalf("capabilities: %v", err)
	}
	return NewProviderRegistry(NewProviderFactory(cfg), caps)
}

func TestResolveModel(t *testing.T) {
	registry := newTestRegistry(t, &config.Config{Environment: "dev"})

	tests := []struct {
		name      string
		model     string
		wantTools bool
		wantErr   bool
	}{
		{"lorem with tools", "lorem-fast", true, false},
		{"lorem without tools", "lorem-plain", false, false},
		{"anthropic without key", "claude-haiku-4-5-20251001", false, true},
		{"unlisted model", "lorem-unknown", false, true},
		{"unknown provider", "gpt-4", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := registry.ResolveModel(tt.model)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveModel: %v", err)
			}
			if resolved.SupportsTools != tt.wantTools {
				t.Errorf("supports tools = %v", resolved.SupportsTools)
			}
			if resolved.Provider.Name() != "lorem" {
				t.Errorf("provider = %s", resolved.Provider.Name())
			}
		})
	}
}

func TestProviderIsCached(t *testing.T) {
	registry := newTestRegistry(t, &config.Config{Environment: "dev"})
	a, err := registry.GetProvider("lorem")
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	b, _ := registry.GetProvider("lorem")
	if a != b {
		t.Error("expected cached provider instance")
	}
}

func TestListModelsOnlyConfiguredProviders(t *testing.T) {
	dev := newTestRegistry(t, &config.Config{Environment: "dev"})
	models := dev.ListModels("lorem-fast")
	if len(models) != 2 {
		t.Fatalf("dev models = %d, want the two lorem models", len(models))
	}
	if !models[0].Default || models[0].Provider != "lorem" {
		t.Errorf("first model = %+v", models[0])
	}

	prod := newTestRegistry(t, &config.Config{Environment: "prod", AnthropicAPIKey: "key"})
	for _, m := range prod.ListModels("") {
		if m.Provider != "anthropic" {
			t.Errorf("prod lists %s model %s", m.Provider, m.ID)
		}
	}
	if err := prod.Validate("lorem-fast"); err == nil {
		t.Error("lorem must not validate in prod")
	}
}
