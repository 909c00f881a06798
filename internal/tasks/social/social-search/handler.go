// internal/tasks/social/social-search/handler.go
package socialsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/llmtext"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/validation"
)

const (
	TaskType       = "social-search"
	FailureMessage = "Failed to find social profiles."
)

const promptTemplate = `Find the official social media profiles for "%s".
Look specifically for: Instagram, Facebook, LinkedIn, X (formerly Twitter), and YouTube.
Also find the official website if available.
Provide a short professional summary of the person or company.

Output strictly valid JSON (no markdown code blocks) with the following structure:
{
  "entityName": "Corrected Name",
  "summary": "Brief bio/summary",
  "profiles": {
     "instagram": "url_or_null",
     "facebook": "url_or_null",
     "linkedin": "url_or_null",
     "twitter": "url_or_null",
     "youtube": "url_or_null",
     "website": "url_or_null"
  }
}
Do not include explanations, just the JSON string.`

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
		jsonSchema: resultSchema.JSONSchema(),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, apperrors.NewInvalidInputError("query is required")
	}

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model: h.config.Model,
		Parts: []gemini.Part{gemini.TextPart(fmt.Sprintf(promptTemplate, query))},
		Tools: []gemini.Tool{gemini.ToolGoogleSearch},
	})
	if err != nil {
		return nil, h.fail(query, err)
	}

	cleaned, err := llmtext.RequireJSONObject(resp.Text)
	if err != nil {
		return nil, h.fail(query, err)
	}

	var result SocialProfileResult
	if err := validation.DecodeStrict(cleaned, h.jsonSchema, &result); err != nil {
		return nil, h.fail(query, err)
	}
	result.Profiles.normalize()
	result.Sources = resp.Citations
	if result.Sources == nil {
		result.Sources = []gemini.Citation{}
	}

	h.logger.Info("social profiles found", map[string]interface{}{
		"query":      query,
		"entityName": result.EntityName,
		"platforms":  result.Profiles.count(),
	})
	return &result, nil
}

func (h *Handler) fail(query string, err error) error {
	h.logger.Error("social profile search failed", map[string]interface{}{
		"query": query,
		"error": err.Error(),
	})
	return apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
}

func (p *Profiles) fields() []**string {
	return []**string{&p.Instagram, &p.Facebook, &p.LinkedIn, &p.Twitter, &p.YouTube, &p.Website}
}

// normalize drops empty and "null" placeholders.
func (p *Profiles) normalize() {
	for _, f := range p.fields() {
		if *f == nil {
			continue
		}
		v := strings.TrimSpace(**f)
		if v == "" || strings.EqualFold(v, "null") || v == "url_or_null" {
			*f = nil
			continue
		}
		*f = &v
	}
}

func (p *Profiles) count() int {
	n := 0
	for _, f := range p.fields() {
		if *f != nil {
			n++
		}
	}
	return n
}
