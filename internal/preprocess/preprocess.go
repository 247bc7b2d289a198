// Package preprocess normalises raw markdown content before prompt
// construction. Everything here is a pure function of its input: the worst
// outcome is the minimally cleaned content plus warnings about what could not
// be verified.
package preprocess

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Advisory length bounds. Content outside them is still processed.
const (
	minAdvisoryLength = 50
	maxAdvisoryLength = 10000
)

// Metadata summarises structural observations made while cleaning.
type Metadata struct {
	OriginalLength int  `json:"originalLength"`
	CleanedLength  int  `json:"cleanedLength"`
	Headings       int  `json:"headings"`
	CodeBlocks     int  `json:"codeBlocks"`
	RepairedFence  bool `json:"repairedFence"`
	ContainsHTML   bool `json:"containsHtml"`
}

var (
	htmlDetector = bluemonday.StrictPolicy()

	// Four or more newlines in a row means at least three blank lines.
	excessBlankLines = regexp.MustCompile(`\n{4,}`)
)

// Clean normalises line endings and whitespace, repairs unterminated code
// fences, and reports structural warnings. It never fails.
func Clean(raw string) (string, []string, Metadata) {
	metadata := Metadata{OriginalLength: len(raw)}
	var warnings []string

	cleaned := strings.ReplaceAll(raw, "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		kept = append(kept, line)
		if strings.HasPrefix(line, "#") {
			metadata.Headings++
		}
	}
	cleaned = strings.Join(kept, "\n")

	// Three or more consecutive blank lines collapse to a single one;
	// ordinary paragraph spacing is left alone.
	cleaned = excessBlankLines.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	fences := strings.Count(cleaned, "```")
	metadata.CodeBlocks = fences / 2
	if fences%2 != 0 {
		cleaned += "\n```"
		metadata.RepairedFence = true
		warnings = append(warnings, "unterminated code fence detected; a closing fence was appended")
	}

	warnings = append(warnings, emphasisWarnings(cleaned)...)

	if detected := html.UnescapeString(htmlDetector.Sanitize(cleaned)); detected != cleaned {
		metadata.ContainsHTML = true
		warnings = append(warnings, "content contains raw HTML markup; it is passed to providers verbatim")
	}

	metadata.CleanedLength = len(cleaned)
	if metadata.CleanedLength < minAdvisoryLength {
		warnings = append(warnings, fmt.Sprintf("content is very short (%d characters) and is likely to score poorly", metadata.CleanedLength))
	}
	if metadata.CleanedLength > maxAdvisoryLength {
		warnings = append(warnings, fmt.Sprintf("content is very long (%d characters) and may increase processing time", metadata.CleanedLength))
	}

	return cleaned, warnings, metadata
}

// emphasisWarnings flags odd counts of emphasis markers. Unlike fences these
// are not repaired: guessing where the author meant to close emphasis is
// ambiguous. Asterisks inside fenced code blocks and list-bullet asterisks
// are not emphasis and are excluded from the counts.
func emphasisWarnings(content string) []string {
	var warnings []string

	bold, italic := 0, 0
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trimmed, "* ") {
			trimmed = trimmed[2:]
		}
		bold += strings.Count(trimmed, "**")
		italic += strings.Count(strings.ReplaceAll(trimmed, "**", ""), "*")
	}

	if bold%2 != 0 {
		warnings = append(warnings, "odd number of bold (**) markers; emphasis may be unterminated")
	}
	if italic%2 != 0 {
		warnings = append(warnings, "odd number of italic (*) markers; emphasis may be unterminated")
	}

	return warnings
}
