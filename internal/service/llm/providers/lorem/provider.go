// Package lorem is a development LLM provider. It answers with lorem ipsum
// and requests tools by keyword so the chat loop can be exercised without
// an API key.
package lorem

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/google/uuid"

	"docit/internal/domain/models/llm"
	domainllm "docit/internal/domain/services/llm"
)

// toolKeywords maps a word in the prompt to the tool it triggers, in
// request order.
var toolKeywords = []struct {
	keyword string
	tool    string
}{
	{"folder", "getAllFolders"},
	{"list", "getAllLists"},
	{"item", "getAllItems"},
}

var userIDPattern = regexp.MustCompile(`userId is ([A-Za-z0-9_-]+)`)

// Provider is a mock LLM provider that generates lorem ipsum text.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// GenerateResponse answers after a model-dependent delay. A prompt naming
// folders, lists or items gets matching tool requests when tools are offered;
// tool results get a short answer that counts what came back.
func (p *Provider) GenerateResponse(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, fmt.Errorf("model '%s' is not supported by lorem provider", req.Model)
	}

	select {
	case <-time.After(responseDelay(req.Model)):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var blocks []*llm.ContentBlock
	stopReason := "end_turn"

	last := lastMessage(req.Messages)
	switch {
	case last != nil && hasToolResults(last):
		blocks = append(blocks, llm.NewTextBlock(p.summarizeResults(last)))

	case len(req.Tools) > 0 && !req.DisableToolUse:
		uses := p.toolRequests(req)
		if len(uses) > 0 {
			blocks = append(blocks, llm.NewTextBlock("Let me check."))
			blocks = append(blocks, uses...)
			stopReason = "tool_use"
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, llm.NewTextBlock(p.generator.Paragraph(2, 4)))
	}

	output := 0
	for _, b := range blocks {
		output += len(strings.Fields(b.Text))
	}

	return &domainllm.GenerateResponse{
		Content:      blocks,
		Model:        req.Model,
		InputTokens:  p.estimateTokens(req.Messages),
		OutputTokens: output,
		StopReason:   stopReason,
	}, nil
}

// responseDelay returns the simulated latency based on the model name.
func responseDelay(model string) time.Duration {
	switch {
	case strings.Contains(model, "slow"):
		return 2 * time.Second
	case strings.Contains(model, "fast"):
		return 0
	default:
		return 200 * time.Millisecond
	}
}

func (p *Provider) toolRequests(req *domainllm.GenerateRequest) []*llm.ContentBlock {
	offered := make(map[string]bool, len(req.Tools))
	for _, t := range req.Tools {
		offered[t.Name] = true
	}

	prompt := strings.ToLower(lastUserText(req.Messages))
	userID := findUserID(req.Messages)

	var uses []*llm.ContentBlock
	for _, kw := range toolKeywords {
		if !offered[kw.tool] || !strings.Contains(prompt, kw.keyword) {
			continue
		}
		input := map[string]interface{}{}
		if userID != "" {
			input["userId"] = userID
		}
		uses = append(uses, llm.NewToolUseBlock("toolu_"+uuid.NewString(), kw.tool, input))
	}
	return uses
}

func (p *Provider) summarizeResults(msg *domainllm.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if block.BlockType != llm.BlockTypeToolResult {
			continue
		}
		if block.IsError {
			parts = append(parts, fmt.Sprintf("%s failed: %s.", block.ToolName, block.Output))
			continue
		}
		var entries []interface{}
		if err := json.Unmarshal([]byte(block.Output), &entries); err != nil {
			parts = append(parts, fmt.Sprintf("%s returned something I could not read.", block.ToolName))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s returned %d entries.", block.ToolName, len(entries)))
	}
	parts = append(parts, p.generator.Sentence(5, 10))
	return strings.Join(parts, " ")
}

func lastMessage(messages []domainllm.Message) *domainllm.Message {
	if len(messages) == 0 {
		return nil
	}
	return &messages[len(messages)-1]
}

func hasToolResults(msg *domainllm.Message) bool {
	for _, block := range msg.Content {
		if block.BlockType == llm.BlockTypeToolResult {
			return true
		}
	}
	return false
}

func lastUserText(messages []domainllm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != llm.RoleUser {
			continue
		}
		var text strings.Builder
		for _, block := range messages[i].Content {
			if block.BlockType == llm.BlockTypeText {
				text.WriteString(block.Text)
			}
		}
		if text.Len() > 0 {
			return text.String()
		}
	}
	return ""
}

// findUserID reads the id announced by the greeting message
func findUserID(messages []domainllm.Message) string {
	for _, msg := range messages {
		for _, block := range msg.Content {
			if m := userIDPattern.FindStringSubmatch(block.Text); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// estimateTokens approximates input tokens by word count.
func (p *Provider) estimateTokens(messages []domainllm.Message) int {
	total := 0
	for _, msg := range messages {
		for _, block := range msg.Content {
			total += len(strings.Fields(block.Text)) + len(strings.Fields(block.Output))
		}
	}
	return total
}
