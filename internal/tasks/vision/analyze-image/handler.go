// internal/tasks/vision/analyze-image/handler.go
package analyzeimage

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
	TaskType       = "analyze-image"
	FailureMessage = "Failed to analyze image."
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
	mimeType, data, err := h.decodeImage(input)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		prompt = h.config.DefaultPrompt
	}

	h.logger.Info("analyzing image", map[string]interface{}{
		"mimeType":  mimeType,
		"imageSize": len(data),
	})

	// Image first, then the instruction.
	resp, err := gemini.GenerateText(ctx, h.model, &gemini.Request{
		Model: h.config.Model,
		Parts: []gemini.Part{
			gemini.InlinePart(mimeType, data),
			gemini.TextPart(prompt),
		},
	})
	if err != nil {
		h.logger.Error("image analysis failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.NewOperationFailedError(TaskType, FailureMessage, err)
	}

	return &Output{Analysis: resp.Text}, nil
}

func (h *Handler) decodeImage(input *Input) (string, []byte, error) {
	if strings.TrimSpace(input.ImageBase64) == "" {
		return "", nil, fmt.Errorf("imageBase64 is required")
	}

	mimeType, payload, err := validation.ParseDataURL(input.ImageBase64)
	if err != nil {
		return "", nil, err
	}
	if explicit := strings.TrimSpace(input.MIMEType); explicit != "" {
		mimeType = explicit
	}
	if !validation.ValidateMIMEType(mimeType) {
		return "", nil, fmt.Errorf("invalid mimeType %q", mimeType)
	}

	data, err := validation.DecodeBase64Image(payload)
	if err != nil {
		return "", nil, err
	}
	if h.config.MaxImageBytes > 0 && len(data) > h.config.MaxImageBytes {
		return "", nil, fmt.Errorf("image exceeds %d bytes", h.config.MaxImageBytes)
	}
	return mimeType, data, nil
}
