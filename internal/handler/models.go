package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/capabilities"
	llmModels "docit/internal/domain/models/llm"
	llmSvc "docit/internal/domain/services/llm"
	"docit/internal/httputil"
)

// ModelLister is the part of the chat service the models endpoint needs
type ModelLister interface {
	ListModels() []llmModels.ModelInfo
}

var _ ModelLister = llmSvc.ChatService(nil)

// ModelsHandler handles HTTP requests for model capabilities
type ModelsHandler struct {
	models   ModelLister
	registry *capabilities.Registry
	logger   *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(models ModelLister, registry *capabilities.Registry, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		models:   models,
		registry: registry,
		logger:   logger,
	}
}

// ProviderResponse represents a provider with its models
type ProviderResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Models []ModelResponse `json:"models"`
}

// ModelResponse represents a model's capabilities for the API response
type ModelResponse struct {
	ID            string           `json:"id"`
	DisplayName   string           `json:"display_name"`
	ContextWindow int              `json:"context_window"`
	Description   string           `json:"description,omitempty"`
	Default       bool             `json:"default"`
	Capabilities  CapabilitiesInfo `json:"capabilities"`
}

// CapabilitiesInfo represents model capabilities
type CapabilitiesInfo struct {
	ToolCalls bool `json:"tool_calls"`
	MaxOutput int  `json:"max_output,omitempty"`
}

// GetModels returns the selectable models grouped by provider
// GET /api/models
func (h *ModelsHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	providers := []ProviderResponse{}
	index := map[string]int{}

	for _, m := range h.models.ListModels() {
		i, ok := index[m.Provider]
		if !ok {
			i = len(providers)
			index[m.Provider] = i
			providers = append(providers, ProviderResponse{
				ID:   m.Provider,
				Name: h.providerName(m.Provider),
			})
		}
		providers[i].Models = append(providers[i].Models, h.convertModel(m))
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
	})
}

func (h *ModelsHandler) convertModel(m llmModels.ModelInfo) ModelResponse {
	resp := ModelResponse{
		ID:            m.ID,
		DisplayName:   m.DisplayName,
		ContextWindow: m.ContextWindow,
		Default:       m.Default,
		Capabilities:  CapabilitiesInfo{ToolCalls: m.SupportsTools},
	}
	if h.registry != nil {
		if caps, err := h.registry.GetModelCapabilities(m.Provider, m.ID); err == nil {
			resp.Description = caps.Description
			resp.Capabilities.MaxOutput = caps.MaxOutput
		}
	}
	return resp
}

func (h *ModelsHandler) providerName(id string) string {
	switch id {
	case "anthropic":
		return "Anthropic"
	case "lorem":
		return "Lorem (offline)"
	default:
		return id
	}
}
