package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"docit/internal/domain/models/llm"
)

// ToolCall represents a single tool invocation request.
type ToolCall struct {
	ID    string                 `json:"id"`    // tool_use_id from LLM
	Name  string                 `json:"name"`  // tool name
	Input map[string]interface{} `json:"input"` // tool parameters
}

// ToolResult represents the result of a tool execution.
type ToolResult struct {
	ID      string      `json:"id"`       // tool_use_id (matches ToolCall.ID)
	Name    string      `json:"name"`     // tool name (matches ToolCall.Name)
	Result  interface{} `json:"result"`   // execution result (nil if error)
	Error   error       `json:"error"`    // execution error (nil if success)
	IsError bool        `json:"is_error"` // whether execution failed
}

// ToolRegistry manages tool executors and handles tool execution.
// It is thread-safe and can be used concurrently.
type ToolRegistry struct {
	mu        sync.RWMutex
	executors map[string]ToolExecutor
	order     []string
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool executor under its definition's name.
// If a tool with the same name already exists, it will be replaced.
func (r *ToolRegistry) Register(executor ToolExecutor) {
	name := executor.Definition().Name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executors[name]; !exists {
		r.order = append(r.order, name)
	}
	r.executors[name] = executor
}

// Definitions returns the registered tools in registration order.
func (r *ToolRegistry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.executors[name].Definition())
	}
	return defs
}

// Get retrieves a tool executor by name.
// Returns nil if the tool is not registered.
func (r *ToolRegistry) Get(name string) ToolExecutor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.executors[name]
}

// Execute runs a single tool and returns the result.
// Returns an error if the tool is not found or execution fails.
func (r *ToolRegistry) Execute(ctx context.Context, call ToolCall) ToolResult {
	executor := r.Get(call.Name)
	if executor == nil {
		return ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Result:  nil,
			Error:   fmt.Errorf("tool not found: %s", call.Name),
			IsError: true,
		}
	}

	result, err := executor.Execute(ctx, call.Input)
	if err != nil {
		return ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Result:  nil,
			Error:   err,
			IsError: true,
		}
	}

	return ToolResult{
		ID:      call.ID,
		Name:    call.Name,
		Result:  result,
		Error:   nil,
		IsError: false,
	}
}

// Block converts a result into the tool_result block fed back to the model.
// Errors are reported to the model as text, never as Go errors.
func (res ToolResult) Block() *llm.ContentBlock {
	if res.IsError {
		msg := "tool failed"
		if res.Error != nil {
			msg = res.Error.Error()
		}
		return llm.NewToolResultBlock(res.ID, res.Name, msg, true)
	}

	out, err := json.Marshal(res.Result)
	if err != nil {
		return llm.NewToolResultBlock(res.ID, res.Name, fmt.Sprintf("encode result: %v", err), true)
	}
	return llm.NewToolResultBlock(res.ID, res.Name, string(out), false)
}

// ExecuteParallel runs multiple tools concurrently and returns results in the same order.
// This method uses goroutines for parallel execution while preserving result order.
// Context cancellation will stop all ongoing executions.
func (r *ToolRegistry) ExecuteParallel(ctx context.Context, calls []ToolCall) []ToolResult {
	if len(calls) == 0 {
		return []ToolResult{}
	}

	// Pre-allocate results slice with correct length
	results := make([]ToolResult, len(calls))
	var wg sync.WaitGroup

	// Execute each tool in a separate goroutine
	for i, call := range calls {
		wg.Add(1)
		go func(index int, toolCall ToolCall) {
			defer wg.Done()

			// Check context before executing
			select {
			case <-ctx.Done():
				results[index] = ToolResult{
					ID:      toolCall.ID,
					Name:    toolCall.Name,
					Result:  nil,
					Error:   ctx.Err(),
					IsError: true,
				}
				return
			default:
			}

			// Execute the tool
			results[index] = r.Execute(ctx, toolCall)
		}(i, call)
	}

	// Wait for all executions to complete
	wg.Wait()

	return results
}
