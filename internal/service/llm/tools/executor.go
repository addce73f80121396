package tools

import (
	"context"

	"docit/internal/domain/models/llm"
)

// ToolExecutor defines the interface for executing a tool.
// Implementations must be thread-safe and respect context cancellation.
type ToolExecutor interface {
	// Definition describes the tool to the model.
	Definition() llm.ToolDefinition

	// Execute runs the tool with the given input parameters.
	// The returned interface{} must be JSON-serializable.
	Execute(ctx context.Context, input map[string]interface{}) (interface{}, error)
}
