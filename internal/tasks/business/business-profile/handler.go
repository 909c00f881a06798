// internal/tasks/business/business-profile/handler.go
package businessprofile

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
	TaskType       = "business-profile"
	FailureMessage = "Failed to fetch business profile."
)

const promptTemplate = `Retrieve detailed business information and reviews for "%s" using Google Maps.
I need the exact address, rating, phone number, website, and a list of real reviews.
Estimate the approximate latitude and longitude for the location found.
Also provide a business summary based on the reviews.

IMPORTANT: Return the output strictly as a valid JSON object without markdown code fences.
The JSON must strictly follow this structure:
{
  "name": "string",
  "address": "string",
  "rating": number,
  "reviewCount": number,
  "category": "string",
  "isOpen": boolean,
  "phoneNumber": "string",
  "website": "string",
  "summary": "string",
  "location": { "lat": number, "lng": number },
  "reviews": [ { "author": "string", "rating": number, "text": "string", "relativeTime": "string" } ]
}`

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
		jsonSchema: profileSchema.JSONSchema(),
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
	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("businessName is required")
	}

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model: h.config.Model,
		Parts: []gemini.Part{gemini.TextPart(fmt.Sprintf(promptTemplate, name))},
		Tools: []gemini.Tool{gemini.ToolGoogleMaps},
	})
	if err != nil {
		return nil, h.fail(name, err)
	}

	cleaned := llmtext.StripCodeFences(resp.Text)
	if cleaned == "" {
		return nil, h.fail(name, gemini.ErrEmptyResponse)
	}

	var profile BusinessProfile
	if err := validation.DecodeStrict(cleaned, h.jsonSchema, &profile); err != nil {
		return nil, h.fail(name, err)
	}
	if profile.Reviews == nil {
		profile.Reviews = []Review{}
	}
	profile.Sources = resp.Citations
	if profile.Sources == nil {
		profile.Sources = []gemini.Citation{}
	}

	h.logger.Info("business profile retrieved", map[string]interface{}{
		"businessName": name,
		"reviews":      len(profile.Reviews),
		"sources":      len(profile.Sources),
	})
	return &profile, nil
}

func (h *Handler) fail(name string, err error) error {
	h.logger.Error("business profile lookup failed", map[string]interface{}{
		"businessName": name,
		"error":        err.Error(),
	})
	return apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
}
