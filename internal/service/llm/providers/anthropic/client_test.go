package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"

	"docit/internal/domain/models/llm"
	domainllm "docit/internal/domain/services/llm"
)

const toolUseResponse = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-haiku-4-5-20251001",
  "content": [
    {"type": "text", "text": "Let me look."},
    {"type": "tool_use", "id": "toolu_01", "name": "getAllFolders", "input": {"userId": "u1"}}
  ],
  "stop_reason": "tool_use",
  "usage": {"input_tokens": 42, "output_tokens": 7}
}`

func TestGenerateResponseWithTools(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, toolUseResponse)
	}))
	defer srv.Close()

	provider, err := NewProvider("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	resp, err := provider.GenerateResponse(context.Background(), &domainllm.GenerateRequest{
		Model:  "claude-haiku-4-5-20251001",
		System: "Be brief.",
		Messages: []domainllm.Message{
			{Role: llm.RoleUser, Content: []*llm.ContentBlock{llm.NewTextBlock("What folders do I have?")}},
		},
		Tools: []llm.ToolDefinition{{
			Name:        "getAllFolders",
			Description: "Lists folders",
			Properties:  map[string]interface{}{"userId": map[string]interface{}{"type": "string"}},
		}},
	})
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}

	tools, ok := body["tools"].([]interface{})
	if !ok || len(tools) != 1 {
		t.Fatalf("request tools = %v", body["tools"])
	}
	if name := tools[0].(map[string]interface{})["name"]; name != "getAllFolders" {
		t.Errorf("tool name = %v", name)
	}
	if body["max_tokens"] != float64(defaultMaxTokens) {
		t.Errorf("max_tokens = %v", body["max_tokens"])
	}
	if body["system"] == nil {
		t.Error("system prompt not sent")
	}

	if resp.Text() != "Let me look." {
		t.Errorf("text = %q", resp.Text())
	}
	uses := resp.ToolUses()
	if len(uses) != 1 {
		t.Fatalf("tool uses = %d", len(uses))
	}
	if uses[0].ToolUseID != "toolu_01" || uses[0].ToolName != "getAllFolders" || uses[0].Input["userId"] != "u1" {
		t.Errorf("tool use = %+v", uses[0])
	}
	if resp.StopReason != "tool_use" || resp.InputTokens != 42 {
		t.Errorf("stop = %s, input tokens = %d", resp.StopReason, resp.InputTokens)
	}
}

func TestConvertToolResultMessages(t *testing.T) {
	messages, err := convertToAnthropicMessages([]domainllm.Message{
		{Role: llm.RoleAssistant, Content: []*llm.ContentBlock{
			llm.NewToolUseBlock("toolu_01", "getAllLists", nil),
		}},
		{Role: llm.RoleUser, Content: []*llm.ContentBlock{
			llm.NewToolResultBlock("toolu_01", "getAllLists", `[]`, false),
		}},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d", len(messages))
	}

	if _, err := convertToAnthropicMessages([]domainllm.Message{{Role: "system"}}); err == nil {
		t.Error("expected error for unsupported role")
	}
}

func TestSupportsModel(t *testing.T) {
	p, err := NewProvider("key")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if !p.SupportsModel("claude-sonnet-4-5") || p.SupportsModel("lorem-fast") {
		t.Error("unexpected model support")
	}
	if _, err := NewProvider(""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestDisableToolUseSendsToolChoiceNone(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_02","type":"message","role":"assistant","model":"claude-haiku-4-5-20251001",
			"content":[{"type":"text","text":"You have two folders."}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`)
	}))
	defer srv.Close()

	provider, err := NewProvider("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	resp, err := provider.GenerateResponse(context.Background(), &domainllm.GenerateRequest{
		Model:          "claude-haiku-4-5-20251001",
		Messages:       []domainllm.Message{{Role: llm.RoleUser, Content: []*llm.ContentBlock{llm.NewTextBlock("hi")}}},
		Tools:          []llm.ToolDefinition{{Name: "getAllFolders"}},
		DisableToolUse: true,
	})
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}

	choice, ok := body["tool_choice"].(map[string]interface{})
	if !ok || choice["type"] != "none" {
		t.Errorf("tool_choice = %v", body["tool_choice"])
	}
	if resp.Text() != "You have two folders." {
		t.Errorf("text = %q", resp.Text())
	}
}
