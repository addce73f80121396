package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"docit/internal/domain/models/llm"
)

// stubTool answers with a fixed value.
type stubTool struct {
	name   string
	result interface{}
}

func (s *stubTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{Name: s.name}
}

func (s *stubTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	return s.result, nil
}

func TestExecuteUnknownTool(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)

	result := registry.Execute(context.Background(), ToolCall{ID: "t1", Name: "getAllNotes"})
	if !result.IsError || result.ID != "t1" {
		t.Fatalf("result = %+v", result)
	}

	block := result.Block()
	if !block.IsError || !strings.Contains(block.Output, "getAllNotes") {
		t.Errorf("block = %+v", block)
	}
}

func TestExecuteParallelAnswersEveryCall(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)

	calls := []ToolCall{
		{ID: "a", Name: "getAllItems", Input: map[string]interface{}{"userId": "u1"}},
		{ID: "b", Name: "getAllFolders", Input: map[string]interface{}{"userId": "u2"}},
		{ID: "c", Name: "getAllLists"},
	}
	results := registry.ExecuteParallel(context.Background(), calls)
	if len(results) != len(calls) {
		t.Fatalf("results = %d, want %d", len(results), len(calls))
	}

	tests := []struct {
		id         string
		wantError  bool
		wantOutput string
	}{
		{"a", false, `"name":"Report"`},
		{"b", true, ErrUserMismatch.Error()},
		{"c", false, `"name":"Tasks"`},
	}

	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			block := results[i].Block()
			if block.BlockType != llm.BlockTypeToolResult || block.ToolUseID != tt.id {
				t.Fatalf("block = %+v", block)
			}
			if block.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v", block.IsError, tt.wantError)
			}
			if !strings.Contains(block.Output, tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", block.Output, tt.wantOutput)
			}
		})
	}
}

func TestExecuteParallelCancelled(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := registry.ExecuteParallel(ctx, []ToolCall{
		{ID: "a", Name: "getAllFolders"},
		{ID: "b", Name: "getAllItems"},
	})
	for _, result := range results {
		if !result.IsError || !errors.Is(result.Error, context.Canceled) {
			t.Errorf("result %s = %+v, want context.Canceled", result.ID, result)
		}
	}
}

func TestExecuteParallelNoCalls(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)
	if results := registry.ExecuteParallel(context.Background(), nil); len(results) != 0 {
		t.Errorf("results = %+v", results)
	}
}

func TestDefinitionsKeepRegistrationOrder(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)
	// replacing a tool keeps its slot
	registry.Register(&stubTool{name: "getAllLists", result: []string{}})
	registry.Register(&stubTool{name: "getAllTags", result: []string{}})

	var names []string
	for _, def := range registry.Definitions() {
		names = append(names, def.Name)
	}
	want := "getAllFolders,getAllLists,getAllItems,getAllTags"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("definitions = %s, want %s", got, want)
	}

	result := registry.Execute(context.Background(), ToolCall{ID: "t", Name: "getAllLists"})
	if got, ok := result.Result.([]string); !ok || len(got) != 0 {
		t.Errorf("replaced tool was not used, result = %+v", result.Result)
	}
}

func TestToolResultBlock(t *testing.T) {
	tests := []struct {
		name       string
		result     ToolResult
		wantError  bool
		wantOutput string
	}{
		{
			name:       "json result",
			result:     ToolResult{ID: "t1", Name: "getAllFolders", Result: []string{"a", "b"}},
			wantOutput: `["a","b"]`,
		},
		{
			name:       "tool error",
			result:     ToolResult{ID: "t2", Name: "getAllLists", Error: errors.New("boom"), IsError: true},
			wantError:  true,
			wantOutput: "boom",
		},
		{
			name:       "error without cause",
			result:     ToolResult{ID: "t3", Name: "getAllItems", IsError: true},
			wantError:  true,
			wantOutput: "tool failed",
		},
		{
			name:       "unencodable result",
			result:     ToolResult{ID: "t4", Name: "getAllItems", Result: make(chan int)},
			wantError:  true,
			wantOutput: "encode result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := tt.result.Block()
			if block.ToolUseID != tt.result.ID || block.ToolName != tt.result.Name {
				t.Errorf("block ids = %s/%s", block.ToolUseID, block.ToolName)
			}
			if block.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v", block.IsError, tt.wantError)
			}
			if !strings.Contains(block.Output, tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", block.Output, tt.wantOutput)
			}
		})
	}
}
