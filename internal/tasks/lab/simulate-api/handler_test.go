// internal/tasks/lab/simulate-api/handler_test.go
package simulateapi

import (
	"context"
	"errors"
	"testing"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini/geminitest"
	"cloud-api-console/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute_Success(t *testing.T) {
	stub := geminitest.NewText(`{"aqi": 42, "category": "Good"}`)
	h := NewHandler(DefaultConfig("gemini-3-flash-preview"), stub, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{APIName: "Air Quality API", Input: "Air quality in Tokyo"})

	require.NoError(t, err)
	assert.Equal(t, `{"aqi": 42, "category": "Good"}`, output.Output)

	req := stub.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "Act as the Air Quality API. Process the following input and return a realistic response "+
		"typical of this API (e.g., JSON analysis, report, or status):\n\n  Input: \"Air quality in Tokyo\"", req.Parts[0].Text)
	assert.Empty(t, req.SystemInstruction)
	assert.Empty(t, req.Tools)
}

func TestHandler_Execute_EmptyInputIsAllowed(t *testing.T) {
	stub := geminitest.NewText("status: OK")
	h := NewHandler(DefaultConfig("m"), stub, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{APIName: "Geolocation API"})

	require.NoError(t, err)
	assert.Equal(t, "status: OK", output.Output)
	assert.Contains(t, stub.LastRequest().Parts[0].Text, `Input: ""`)
}

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name     string
		stub     *geminitest.Stub
		input    *Input
		wantCode apperrors.ErrorCode
		calls    int
	}{
		{
			name:     "model error",
			stub:     geminitest.NewError(errors.New("503")),
			input:    &Input{APIName: "Solar API", Input: "x"},
			wantCode: apperrors.ErrCodeOperationFailed,
			calls:    1,
		},
		{
			name:     "empty response",
			stub:     geminitest.NewText(""),
			input:    &Input{APIName: "Solar API", Input: "x"},
			wantCode: apperrors.ErrCodeOperationFailed,
			calls:    1,
		},
		{
			name:     "missing api name",
			stub:     geminitest.NewText("unused"),
			input:    &Input{Input: "x"},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(DefaultConfig("m"), tt.stub, logger.NewTestLogger(t))
			output, err := h.Execute(context.Background(), tt.input)

			assert.Nil(t, output)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.calls, tt.stub.Calls())
		})
	}
}
