package content

import (
	"strings"
	"unicode"
)

// markdownMarkup is stripped before counting so emphasis and headings do
// not split or add words
var markdownMarkup = strings.NewReplacer(
	"`", "", "**", "", "__", "", "~~", "", "*", "", "_", "", "#", "", ">", "",
)

// CountWords counts the words of an exported Markdown document. Fenced
// code blocks are skipped.
func CountWords(markdown string) int {
	count := 0
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence || line == "---" {
			continue
		}

		line = strings.TrimPrefix(line, "- ")
		if i := strings.Index(line, ". "); i > 0 && isDigits(line[:i]) {
			line = line[i+2:]
		}

		count += len(strings.FieldsFunc(markdownMarkup.Replace(line), unicode.IsSpace))
	}
	return count
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
