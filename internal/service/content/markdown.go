package content

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// MarkdownConverter turns stored item HTML into Markdown, for export and
// for feeding item notes to the assistant.
type MarkdownConverter struct {
	sanitizer *HTMLSanitizer
	converter *md.Converter
}

// NewMarkdownConverter creates a converter that sanitizes before converting
func NewMarkdownConverter(sanitizer *HTMLSanitizer) *MarkdownConverter {
	return &MarkdownConverter{
		sanitizer: sanitizer,
		converter: md.NewConverter("", true, nil),
	}
}

// Convert sanitizes html and renders it as Markdown
func (c *MarkdownConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := c.converter.ConvertString(c.sanitizer.Sanitize(html))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
