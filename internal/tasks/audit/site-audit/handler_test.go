// internal/tasks/audit/site-audit/handler_test.go
package siteaudit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

func reportJSON(t *testing.T, mutate func(map[string]interface{})) string {
	t.Helper()
	resources := make([]interface{}, 0, 12)
	for i := 0; i < 12; i++ {
		resources = append(resources, map[string]interface{}{
			"title":          fmt.Sprintf("Section %d", i+1),
			"score":          80,
			"status":         "Good",
			"details":        "Looks fine.",
			"recommendation": "Keep it up.",
		})
	}
	doc := map[string]interface{}{
		"domain":       "example.com",
		"overallScore": 78,
		"summary":      "Solid site.",
		"webRiskStatus": map[string]interface{}{
			"safe":    true,
			"threats": []interface{}{},
			"details": "No threats found.",
		},
		"detectedImages": []interface{}{"https://example.com/logo.png"},
		"resources":      resources,
	}
	if mutate != nil {
		mutate(doc)
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	stub := geminitest.NewText(reportJSON(t, nil), gemini.Citation{Title: "Example", URI: "https://example.com"})

	report, err := newTestHandler(t, stub).Execute(context.Background(), &Input{URL: "example.com"})

	require.NoError(t, err)
	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, 78.0, report.OverallScore)
	assert.True(t, report.WebRiskStatus.Safe)
	assert.Empty(t, report.WebRiskStatus.Threats)
	assert.Len(t, report.Resources, 12)
	assert.Equal(t, StatusGood, report.Resources[0].Status)
	assert.Equal(t, []string{"https://example.com/logo.png"}, report.DetectedImages)
	assert.Equal(t, []gemini.Citation{{Title: "Example", URI: "https://example.com"}}, report.Sources)

	req := stub.LastRequest()
	require.NotNil(t, req)
	assert.True(t, req.HasTool(gemini.ToolGoogleSearch))
	assert.Equal(t, "application/json", req.ResponseMIMEType)
	assert.True(t, strings.HasPrefix(req.Parts[0].Text, "Perform a deep technical, visual, and business audit of the website: https://example.com."))
	assert.Contains(t, req.Parts[0].Text, "EXACTLY 12 distinct resources/sections")
}

func TestHandler_Execute_ResourceCountNotEnforced(t *testing.T) {
	text := reportJSON(t, func(doc map[string]interface{}) {
		doc["resources"] = doc["resources"].([]interface{})[:3]
	})

	report, err := newTestHandler(t, geminitest.NewText(text)).Execute(context.Background(), &Input{URL: "https://example.com"})

	require.NoError(t, err)
	assert.Len(t, report.Resources, 3)
	assert.NotNil(t, report.Sources)
}

func TestHandler_Execute_UnsafeSite(t *testing.T) {
	text := reportJSON(t, func(doc map[string]interface{}) {
		doc["webRiskStatus"] = map[string]interface{}{
			"safe":    false,
			"threats": []interface{}{"SOCIAL_ENGINEERING"},
			"details": "Phishing reports.",
		}
	})

	report, err := newTestHandler(t, geminitest.NewText(text)).Execute(context.Background(), &Input{URL: "http://unsafe-site.example.com"})

	require.NoError(t, err)
	assert.False(t, report.WebRiskStatus.Safe)
	assert.Equal(t, []string{"SOCIAL_ENGINEERING"}, report.WebRiskStatus.Threats)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name string
		stub *geminitest.Stub
	}{
		{name: "model error", stub: geminitest.NewError(errors.New("search tool failed"))},
		{name: "empty text", stub: geminitest.NewText("")},
		{name: "prose instead of json", stub: geminitest.NewText("The site looks great overall.")},
		{name: "score above range", stub: geminitest.NewText(reportJSON(t, func(doc map[string]interface{}) {
			doc["overallScore"] = 140
		}))},
		{name: "negative resource score", stub: geminitest.NewText(reportJSON(t, func(doc map[string]interface{}) {
			doc["resources"] = []interface{}{map[string]interface{}{
				"title": "SEO", "score": -5, "status": "Poor", "details": "d", "recommendation": "r",
			}}
		}))},
		{name: "unknown status", stub: geminitest.NewText(reportJSON(t, func(doc map[string]interface{}) {
			doc["resources"] = []interface{}{map[string]interface{}{
				"title": "SEO", "score": 50, "status": "Average", "details": "d", "recommendation": "r",
			}}
		}))},
		{name: "missing web risk", stub: geminitest.NewText(reportJSON(t, func(doc map[string]interface{}) {
			delete(doc, "webRiskStatus")
		}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestHandler(t, tt.stub).Execute(context.Background(), &Input{URL: "example.com"})

			assert.Nil(t, report)
			assert.True(t, errors.Is(err, apperrors.ErrOperationFailed))
			stdErr, _ := apperrors.AsStandardError(err)
			assert.Equal(t, FailureMessage, stdErr.Message)
		})
	}
}

func TestHandler_Execute_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "https://"} {
		t.Run(raw, func(t *testing.T) {
			stub := geminitest.NewText("unused")
			_, err := newTestHandler(t, stub).Execute(context.Background(), &Input{URL: raw})

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
			assert.Zero(t, stub.Calls())
		})
	}
}
