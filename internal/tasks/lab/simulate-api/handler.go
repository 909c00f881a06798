// internal/tasks/lab/simulate-api/handler.go
package simulateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/logger"
)

const (
	TaskType       = "simulate-api"
	FailureMessage = "Failed to simulate API."
)

type Handler struct {
	config *Config
	model  gemini.Model
	logger logger.Logger
}

func NewHandler(config *Config, model gemini.Model, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		model:  model,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// Execute asks the model to role-play apiName and answer input the way that API would.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	apiName := strings.TrimSpace(input.APIName)
	if apiName == "" {
		return nil, apperrors.NewInvalidInputError("apiName is required")
	}

	prompt := fmt.Sprintf("Act as the %s. Process the following input and return a realistic response "+
		"typical of this API (e.g., JSON analysis, report, or status):\n\n  Input: \"%s\"", apiName, input.Input)

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model: h.config.Model,
		Parts: []gemini.Part{gemini.TextPart(prompt)},
	})
	if err != nil {
		h.logger.Error("api simulation failed", map[string]interface{}{
			"apiName": apiName,
			"error":   err.Error(),
		})
		return nil, apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
	}

	h.logger.Debug("api simulated", map[string]interface{}{"apiName": apiName})
	return &Output{Output: resp.Text}, nil
}
