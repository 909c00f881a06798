// internal/tasks/grounding/live-search/handler.go
package livesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/llmtext"
	"cloud-api-console/internal/common/logger"
)

const (
	TaskType       = "live-search"
	FailureMessage = "Failed to perform live search."
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, apperrors.NewInvalidInputError("query is required")
	}

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model: h.config.Model,
		Parts: []gemini.Part{gemini.TextPart("Search for the following and provide a summary with sources: " + query)},
		Tools: []gemini.Tool{gemini.ToolGoogleSearch},
	})
	if err != nil {
		h.logger.Error("live search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
	}

	sources := resp.Citations
	if sources == nil {
		sources = []gemini.Citation{}
	}

	h.logger.Info("live search completed", map[string]interface{}{
		"query":   query,
		"sources": len(sources),
	})
	return &Output{
		Text:    llmtext.AppendSources(resp.Text, sources),
		Sources: sources,
	}, nil
}
