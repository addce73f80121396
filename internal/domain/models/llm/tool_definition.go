package llm

// ToolDefinition describes a function the model may call.
// Properties is the JSON-schema "properties" object of the input.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Properties  map[string]interface{} `json:"properties"`
	Required    []string               `json:"required,omitempty"`
}
