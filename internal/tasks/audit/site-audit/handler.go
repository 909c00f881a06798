// internal/tasks/audit/site-audit/handler.go
package siteaudit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/validation"
)

const (
	TaskType       = "site-audit"
	FailureMessage = "Failed to audit website."
)

const promptTemplate = `Perform a deep technical, visual, and business audit of the website: %s.
Tasks:
1. Use Google Search to crawl for details about performance, reputation, and tech stack.
2. SIMULATE A "WEB RISK API" SCAN: Check for phishing, malware, or unwanted software indications associated with this domain.
3. VISUAL ASSETS: Find valid URLs for the website's logo, hero images, or product screenshots found in the search results.
Generate a report with EXACTLY %d distinct resources/sections.
Return the data in strict JSON format matching the schema.`

type Handler struct {
	config     *Config
	model      gemini.Model
	logger     logger.Logger
	jsonSchema map[string]interface{}
}

func NewHandler(config *Config, model gemini.Model, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		model:      model,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		jsonSchema: auditSchema.JSONSchema(),
	}
}

func (h *Handler) Handle(ctx context.Context, variables []byte) (interface{}, error) {
	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	output, err := h.Execute(ctx, &input)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// Execute runs one grounded audit. The section count is requested, not enforced.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	target, err := validation.NormalizeURL(input.URL)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model:            h.config.Model,
		Parts:            []gemini.Part{gemini.TextPart(fmt.Sprintf(promptTemplate, target, h.config.ResourceCount))},
		Tools:            []gemini.Tool{gemini.ToolGoogleSearch},
		ResponseMIMEType: "application/json",
		ResponseSchema:   auditSchema,
	})
	if err != nil {
		return nil, h.fail(target, err)
	}

	var report AuditReport
	if err := validation.DecodeStrict(strings.TrimSpace(resp.Text), h.jsonSchema, &report); err != nil {
		return nil, h.fail(target, err)
	}

	if report.WebRiskStatus.Threats == nil {
		report.WebRiskStatus.Threats = []string{}
	}
	if report.DetectedImages == nil {
		report.DetectedImages = []string{}
	}
	report.Sources = resp.Citations
	if report.Sources == nil {
		report.Sources = []gemini.Citation{}
	}

	h.logger.Info("site audit completed", map[string]interface{}{
		"url":          target,
		"overallScore": report.OverallScore,
		"resources":    len(report.Resources),
		"safe":         report.WebRiskStatus.Safe,
	})
	if len(report.Resources) != h.config.ResourceCount {
		h.logger.Warn("audit section count differs from request", map[string]interface{}{
			"requested": h.config.ResourceCount,
			"received":  len(report.Resources),
		})
	}
	return &report, nil
}

func (h *Handler) fail(target string, err error) error {
	h.logger.Error("site audit failed", map[string]interface{}{
		"url":   target,
		"error": err.Error(),
	})
	return apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
}
