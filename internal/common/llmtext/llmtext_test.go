// internal/common/llmtext/llmtext_test.go
package llmtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no fence", in: `  {"a":1}  `, want: `{"a":1}`},
		{name: "prose before fence", in: "Here you go:\n```json\n{}\n```", want: "Here you go:\n\n{}"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCodeFences(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripCodeFences(got), "stripping must be idempotent")
		})
	}
}

func TestRequireJSONObject(t *testing.T) {
	cleaned, err := RequireJSONObject("```json\n{\"entityName\":\"Acme\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"entityName":"Acme"}`, cleaned)

	_, err = RequireJSONObject("Sure! Here is the JSON: {\"a\":1}")
	assert.ErrorIs(t, err, ErrNotJSONObject)

	_, err = RequireJSONObject("[1,2,3]")
	assert.ErrorIs(t, err, ErrNotJSONObject)

	_, err = RequireJSONObject("")
	assert.ErrorIs(t, err, ErrNotJSONObject)
}

func TestFormatSources(t *testing.T) {
	t.Run("no citations appends nothing", func(t *testing.T) {
		assert.Equal(t, "", FormatSources(nil))
		assert.Equal(t, "summary", AppendSources("summary", []Citation{}))
	})

	t.Run("N citations in order", func(t *testing.T) {
		citations := []Citation{
			{Title: "First", URI: "https://a.example"},
			{Title: "Second", URI: "https://b.example"},
			{Title: "Third", URI: "https://c.example"},
		}
		got := AppendSources("summary", citations)

		require.True(t, strings.HasPrefix(got, "summary\n\n**Sources:**\n"))
		lines := strings.Split(strings.TrimPrefix(got, "summary\n\n**Sources:**\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "- [First](https://a.example)", lines[0])
		assert.Equal(t, "- [Second](https://b.example)", lines[1])
		assert.Equal(t, "- [Third](https://c.example)", lines[2])
	})

	t.Run("missing title falls back to uri", func(t *testing.T) {
		got := FormatSources([]Citation{{URI: "https://a.example"}})
		assert.Equal(t, "\n\n**Sources:**\n- [https://a.example](https://a.example)", got)
	})
}
