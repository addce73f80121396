package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"docit/internal/domain/models/llm"
	domainllm "docit/internal/domain/services/llm"
)

// convertToAnthropicMessages converts domain messages to Anthropic SDK format.
func convertToAnthropicMessages(messages []domainllm.Message) ([]anthropic.MessageParam, error) {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for i, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Content))

		for _, block := range msg.Content {
			switch block.BlockType {
			case llm.BlockTypeText:
				blocks = append(blocks, anthropic.NewTextBlock(block.Text))

			case llm.BlockTypeToolUse:
				input := block.Input
				if input == nil {
					input = map[string]interface{}{}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(block.ToolUseID, input, block.ToolName))

			case llm.BlockTypeToolResult:
				blocks = append(blocks, anthropic.NewToolResultBlock(block.ToolUseID, block.Output, block.IsError))

			default:
				return nil, fmt.Errorf("message %d: unsupported block type '%s'", i, block.BlockType)
			}
		}

		var message anthropic.MessageParam
		switch msg.Role {
		case llm.RoleUser:
			message = anthropic.NewUserMessage(blocks...)
		case llm.RoleAssistant:
			message = anthropic.NewAssistantMessage(blocks...)
		default:
			return nil, fmt.Errorf("message %d: unsupported role '%s'", i, msg.Role)
		}

		result = append(result, message)
	}

	return result, nil
}

// convertToAnthropicTools maps tool definitions to custom tool params.
func convertToAnthropicTools(defs []llm.ToolDefinition) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		properties := def.Properties
		if properties == nil {
			properties = map[string]interface{}{}
		}
		tool := anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: properties,
				Required:   def.Required,
			},
		}
		tools = append(tools, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return tools
}

// convertFromAnthropicResponse converts an Anthropic response to domain format.
// Block types other than text and tool_use are dropped.
func convertFromAnthropicResponse(msg *anthropic.Message) (*domainllm.GenerateResponse, error) {
	blocks := make([]*llm.ContentBlock, 0, len(msg.Content))

	for i, content := range msg.Content {
		switch content.Type {
		case "text":
			blocks = append(blocks, llm.NewTextBlock(content.Text))

		case "tool_use":
			input := map[string]interface{}{}
			if len(content.Input) > 0 {
				if err := json.Unmarshal(content.Input, &input); err != nil {
					return nil, fmt.Errorf("block %d: decode tool input: %w", i, err)
				}
			}
			blocks = append(blocks, llm.NewToolUseBlock(content.ID, content.Name, input))
		}
	}

	return &domainllm.GenerateResponse{
		Content:      blocks,
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		StopReason:   string(msg.StopReason),
	}, nil
}
