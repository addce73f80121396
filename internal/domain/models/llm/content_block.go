package llm

// BlockType identifies the kind of content in a provider message.
type BlockType string

const (
	BlockTypeText       BlockType = "text"
	BlockTypeToolUse    BlockType = "tool_use"
	BlockTypeToolResult BlockType = "tool_result"
)

// ContentBlock is one piece of a provider message. Only the fields for
// its BlockType are set.
type ContentBlock struct {
	BlockType BlockType `json:"block_type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use and tool_result
	ToolUseID string                 `json:"tool_use_id,omitempty"`
	ToolName  string                 `json:"tool_name,omitempty"`
	Input     map[string]interface{} `json:"input,omitempty"`

	// tool_result: JSON-encoded output
	Output  string `json:"output,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// NewTextBlock creates a text content block.
func NewTextBlock(text string) *ContentBlock {
	return &ContentBlock{BlockType: BlockTypeText, Text: text}
}

// NewToolUseBlock creates a tool request block as issued by the model.
func NewToolUseBlock(id, name string, input map[string]interface{}) *ContentBlock {
	return &ContentBlock{BlockType: BlockTypeToolUse, ToolUseID: id, ToolName: name, Input: input}
}

// NewToolResultBlock answers a tool request.
func NewToolResultBlock(id, name, output string, isError bool) *ContentBlock {
	return &ContentBlock{BlockType: BlockTypeToolResult, ToolUseID: id, ToolName: name, Output: output, IsError: isError}
}
