package content

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes dangerous HTML elements and attributes before
// editor content is stored. Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// editorClass matches the formatting classes the rich-text editor emits
// (alignment, indentation, code block language).
var editorClass = regexp.MustCompile(`^(ql-[a-z0-9-]+)( ql-[a-z0-9-]+)*$`)

// NewHTMLSanitizer starts from the UGC policy and additionally keeps the
// editor's formatting classes.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(editorClass).OnElements(
		"p", "span", "li", "ol", "ul", "pre", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	policy.AllowDataURIImages()
	return &HTMLSanitizer{policy: policy}
}

// Sanitize strips scripts, event handlers and javascript: URLs while
// keeping formatting, lists, links, images and code blocks.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
