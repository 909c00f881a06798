// internal/tasks/language/process-text/handler.go
package processtext

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
	TaskType       = "process-text"
	FailureMessage = "Failed to process text."
)

type prompt struct {
	system string
	user   string
}

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

// Handle decodes JSON variables and executes the task.
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
	p, err := h.buildPrompt(input)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	h.logger.Info("processing text", map[string]interface{}{
		"mode":       string(input.Task),
		"textLength": len(input.Text),
	})

	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model:             h.config.Model,
		SystemInstruction: p.system,
		Parts:             []gemini.Part{gemini.TextPart(p.user)},
	})
	if err != nil {
		h.logger.Error("text processing failed", map[string]interface{}{
			"mode":  string(input.Task),
			"error": err.Error(),
		})
		return nil, apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
	}

	return &Output{Result: resp.Text}, nil
}

func (h *Handler) buildPrompt(input *Input) (prompt, error) {
	if strings.TrimSpace(input.Text) == "" {
		return prompt{}, fmt.Errorf("text is required")
	}

	switch input.Task {
	case ModeTranslate:
		target := strings.TrimSpace(input.TargetLang)
		if target == "" {
			target = h.config.DefaultTargetLang
		}
		return prompt{
			system: "You are a professional translator (Cloud Translation API).",
			user:   fmt.Sprintf("Translate the following text to %s:\n\n\"%s\"", target, input.Text),
		}, nil
	case ModeSentiment:
		return prompt{
			system: "You are a Natural Language Processing engine (Cloud NLP API).",
			user:   fmt.Sprintf("Analyze the sentiment, extract entities, and syntax of the following text. Provide a structured report:\n\n\"%s\"", input.Text),
		}, nil
	case ModeQA:
		return prompt{
			system: "You are an intelligent business assistant (My Business Q&A API).",
			user:   fmt.Sprintf("Answer the following customer question or review professionally and helpfully:\n\n\"%s\"", input.Text),
		}, nil
	default:
		return prompt{}, fmt.Errorf("task must be one of TRANSLATE, SENTIMENT, QA, got %q", input.Task)
	}
}
