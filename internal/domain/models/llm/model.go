package llm

// ModelInfo is a model offered to clients by GET /api/models.
type ModelInfo struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
	ContextWindow int    `json:"context_window"`
	Default       bool   `json:"default"`
}
