// internal/tasks/market/generate-market-data/handler.go
package generatemarketdata

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
	TaskType       = "generate-market-data"
	FailureMessage = "Failed to generate market data."
)

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
		jsonSchema: chartSchema.JSONSchema(),
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

	prompt := fmt.Sprintf("Generate a JSON dataset representing market trends or performance metrics for: \"%s\". "+
		"Also provide a brief summary string. "+
		"The JSON should be an array of objects with \"name\" (string) and \"value\" (number) keys.", query)

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model:            h.config.Model,
		Parts:            []gemini.Part{gemini.TextPart(prompt)},
		ResponseMIMEType: "application/json",
		ResponseSchema:   chartSchema,
	})
	if err != nil {
		return nil, h.fail(err)
	}

	var chart ChartData
	if err := validation.DecodeStrict(strings.TrimSpace(resp.Text), h.jsonSchema, &chart); err != nil {
		return nil, h.fail(err)
	}
	if chart.Data == nil {
		chart.Data = []DataPoint{}
	}

	h.logger.Info("market data generated", map[string]interface{}{
		"query":  query,
		"points": len(chart.Data),
	})
	return &chart, nil
}

func (h *Handler) fail(err error) error {
	h.logger.Error("market data generation failed", map[string]interface{}{"error": err.Error()})
	return apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
}
