// internal/tasks/language/process-text/handler_test.go
package processtext

import (
	"context"
	"errors"
	"testing"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/gemini/geminitest"
	"cloud-api-console/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T, model gemini.Model) *Handler {
	return NewHandler(DefaultConfig("gemini-3-flash-preview"), model, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Modes(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		expectedSystem string
		expectedPrompt string
	}{
		{
			name:           "translate with target language",
			input:          &Input{Text: "Hello", Task: ModeTranslate, TargetLang: "Spanish"},
			expectedSystem: "You are a professional translator (Cloud Translation API).",
			expectedPrompt: "Translate the following text to Spanish:\n\n\"Hello\"",
		},
		{
			name:           "translate defaults to English",
			input:          &Input{Text: "Bonjour", Task: ModeTranslate},
			expectedSystem: "You are a professional translator (Cloud Translation API).",
			expectedPrompt: "Translate the following text to English:\n\n\"Bonjour\"",
		},
		{
			name:           "sentiment",
			input:          &Input{Text: "I love it", Task: ModeSentiment},
			expectedSystem: "You are a Natural Language Processing engine (Cloud NLP API).",
			expectedPrompt: "Analyze the sentiment, extract entities, and syntax of the following text. Provide a structured report:\n\n\"I love it\"",
		},
		{
			name:           "question answering",
			input:          &Input{Text: "Are you open Sunday?", Task: ModeQA},
			expectedSystem: "You are an intelligent business assistant (My Business Q&A API).",
			expectedPrompt: "Answer the following customer question or review professionally and helpfully:\n\n\"Are you open Sunday?\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := geminitest.NewText("Hola")
			output, err := newTestHandler(t, stub).Execute(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, "Hola", output.Result)

			req := stub.LastRequest()
			require.NotNil(t, req)
			assert.Equal(t, "gemini-3-flash-preview", req.Model)
			assert.Equal(t, tt.expectedSystem, req.SystemInstruction)
			require.Len(t, req.Parts, 1)
			assert.Equal(t, tt.expectedPrompt, req.Parts[0].Text)
			assert.Empty(t, req.Tools)
		})
	}
}

func TestHandler_Execute_ReturnsTextUnchanged(t *testing.T) {
	stub := geminitest.NewText("  **Report**\n\n- positive  ")
	output, err := newTestHandler(t, stub).Execute(context.Background(), &Input{Text: "x", Task: ModeSentiment})

	require.NoError(t, err)
	assert.Equal(t, "  **Report**\n\n- positive  ", output.Result)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name  string
		model *geminitest.Stub
	}{
		{name: "model error", model: geminitest.NewError(errors.New("quota exceeded"))},
		{name: "empty text", model: geminitest.NewText("")},
		{name: "whitespace text", model: geminitest.NewText(" \n ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newTestHandler(t, tt.model).Execute(context.Background(), &Input{Text: "Hello", Task: ModeTranslate})

			assert.Nil(t, output)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrOperationFailed))
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, FailureMessage, stdErr.Message)
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "empty text", input: &Input{Task: ModeQA}},
		{name: "unknown mode", input: &Input{Text: "hi", Task: "SUMMARIZE"}},
		{name: "missing mode", input: &Input{Text: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := geminitest.NewText("unused")
			_, err := newTestHandler(t, stub).Execute(context.Background(), tt.input)

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
			assert.Zero(t, stub.Calls())
		})
	}
}

func TestHandler_Handle_DecodesVariables(t *testing.T) {
	stub := geminitest.NewText("Hallo")
	h := newTestHandler(t, stub)

	out, err := h.Handle(context.Background(), []byte(`{"text":"Hello","task":"TRANSLATE","targetLang":"German"}`))
	require.NoError(t, err)
	assert.Equal(t, &Output{Result: "Hallo"}, out)

	_, err = h.Handle(context.Background(), []byte(`{not json`))
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
}
