package sumopenai

import (
	"fmt"
	"sort"
	"strings"
)

// buildUserPrompt assembles the summarization request: existing summary
// first (for incremental continuation), then the opaque context payload,
// then the newly dropped messages.
func buildUserPrompt(messagesText, existingSummary string, summaryContext map[string]any) string {
	var b strings.Builder

	if existingSummary != "" {
		b.WriteString("Existing summary:\n")
		b.WriteString(existingSummary)
		b.WriteString("\n\n")
	}

	if len(summaryContext) > 0 {
		keys := make([]string, 0, len(summaryContext))
		for k := range summaryContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Additional context:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %v\n", k, summaryContext[k])
		}
		b.WriteString("\n")
	}

	b.WriteString("New messages:\n")
	b.WriteString(messagesText)
	return b.String()
}
