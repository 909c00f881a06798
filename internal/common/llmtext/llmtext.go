// internal/common/llmtext/llmtext.go

// Package llmtext cleans generated text and renders grounding citations.
package llmtext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotJSONObject is returned when cleaned model text does not open with '{'.
var ErrNotJSONObject = errors.New("model output is not a JSON object")

const sourcesHeader = "\n\n**Sources:**\n"

// Citation is a grounding source attached to a response.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// StripCodeFences removes every "```json" and "```" marker and trims the result.
// Applying it to its own output is a no-op.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// RequireJSONObject strips fences and rejects text that does not start an object.
// No repair is attempted.
func RequireJSONObject(text string) (string, error) {
	cleaned := StripCodeFences(text)
	if !strings.HasPrefix(cleaned, "{") {
		return "", ErrNotJSONObject
	}
	return cleaned, nil
}

// FormatSources renders citations as a Markdown list, one link per citation in order.
// Zero citations render as the empty string.
func FormatSources(citations []Citation) string {
	if len(citations) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(sourcesHeader)
	for i, c := range citations {
		if i > 0 {
			b.WriteByte('\n')
		}
		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = c.URI
		}
		fmt.Fprintf(&b, "- [%s](%s)", title, c.URI)
	}
	return b.String()
}

// AppendSources appends the formatted citation list to text.
func AppendSources(text string, citations []Citation) string {
	return text + FormatSources(citations)
}
