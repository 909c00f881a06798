// internal/tasks/grounding/maps-query/handler_test.go
package mapsquery

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/gemini/geminitest"
	"cloud-api-console/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute_UsesMapsGrounding(t *testing.T) {
	stub := geminitest.NewText("Top pick: Blossom, 187 Columbus Ave.",
		gemini.Citation{Title: "Blossom", URI: "https://maps.google.com/?cid=1"})
	h := NewHandler(DefaultConfig("gemini-2.5-flash"), stub, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Query: "Best vegan restaurants in New York"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output.Text, "Top pick: Blossom, 187 Columbus Ave.\n\n**Sources:**\n"))
	assert.True(t, strings.HasSuffix(output.Text, "- [Blossom](https://maps.google.com/?cid=1)"))
	assert.Equal(t, []gemini.Citation{{Title: "Blossom", URI: "https://maps.google.com/?cid=1"}}, output.Sources)

	req := stub.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.Equal(t, []gemini.Tool{gemini.ToolGoogleMaps}, req.Tools)
	assert.Equal(t, "Find place information for: Best vegan restaurants in New York", req.Parts[0].Text)
}

func TestHandler_Execute_WithoutCitations(t *testing.T) {
	stub := geminitest.NewText("No places matched.")
	h := NewHandler(DefaultConfig("gemini-2.5-flash"), stub, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Query: "Elevation of Machu Picchu"})

	require.NoError(t, err)
	assert.Equal(t, "No places matched.", output.Text)
	assert.Empty(t, output.Sources)
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		stub     *geminitest.Stub
		vars     string
		wantCode apperrors.ErrorCode
	}{
		{name: "model failure", stub: geminitest.NewError(errors.New("boom")), vars: `{"query":"Paris"}`, wantCode: apperrors.ErrCodeOperationFailed},
		{name: "blank answer", stub: geminitest.NewText("  "), vars: `{"query":"Paris"}`, wantCode: apperrors.ErrCodeOperationFailed},
		{name: "missing query", stub: geminitest.NewText("x"), vars: `{}`, wantCode: apperrors.ErrCodeInvalidInput},
		{name: "bad json", stub: geminitest.NewText("x"), vars: `[`, wantCode: apperrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(DefaultConfig("gemini-2.5-flash"), tt.stub, logger.NewTestLogger(t))
			out, err := h.Handle(context.Background(), []byte(tt.vars))

			assert.Nil(t, out)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			if tt.wantCode == apperrors.ErrCodeOperationFailed {
				assert.Equal(t, FailureMessage, stdErr.Message)
			}
		})
	}
}
