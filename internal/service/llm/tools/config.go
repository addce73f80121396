package tools

// ToolConfig centralizes limits for the organizer tools.
type ToolConfig struct {
	// MaxEntries caps how many records one tool call returns
	MaxEntries int

	// MaxDescriptionLength truncates descriptions in tool output
	MaxDescriptionLength int
}

// DefaultToolConfig returns the default tool configuration.
func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		MaxEntries:           500,
		MaxDescriptionLength: 500,
	}
}
