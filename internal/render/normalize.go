package render

import (
	"regexp"
	"strings"
)

// Reasoning models (DeepSeek R1 distills, Qwen3 in thinking mode) prefix
// their answer with a <think>...</think> block. The panels show only the
// final answer, so the block is stripped before rendering.
var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// NormalizeModelOutput cleans up a model reply for display: reasoning
// blocks removed, per-line trailing whitespace trimmed, runs of blank
// lines collapsed.
func NormalizeModelOutput(text string) string {
	text = thinkPattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	text = strings.Join(lines, "\n")

	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
