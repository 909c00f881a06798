// internal/common/gemini/sdk.go
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const tracerName = "cloud-api-console/gemini"

// SDKConfig configures the google.golang.org/genai backed model.
type SDKConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// SDKModel calls the Gemini API through one long-lived genai client.
type SDKModel struct {
	client *genai.Client
	tracer trace.Tracer
	logger logger.Logger
}

// NewSDKModel builds the client. The API key is mandatory.
func NewSDKModel(ctx context.Context, cfg SDKConfig, log logger.Logger) (*SDKModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("genai api key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &SDKModel{
		client: client,
		tracer: otel.Tracer(tracerName),
		logger: log.WithFields(map[string]interface{}{"component": "gemini"}),
	}, nil
}

// Generate performs exactly one GenerateContent call.
func (m *SDKModel) Generate(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := m.tracer.Start(ctx, "gemini.GenerateContent", trace.WithAttributes(
		attribute.String("gemini.model", req.Model),
		attribute.Int("gemini.parts", len(req.Parts)),
		attribute.Bool("gemini.structured", req.ResponseSchema != nil),
	))
	defer span.End()

	start := time.Now()
	result, err := m.client.Models.GenerateContent(ctx, req.Model, buildContents(req), buildConfig(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		metrics.ModelCalls.WithLabelValues(req.Model, "error").Inc()
		m.logger.Warn("generate call failed", map[string]interface{}{
			"model":    req.Model,
			"duration": time.Since(start).String(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("generate content: %w", err)
	}

	resp := &Response{
		Text:      responseText(result),
		Citations: extractCitations(result),
	}

	metrics.ModelCalls.WithLabelValues(req.Model, "ok").Inc()
	metrics.ModelCitations.WithLabelValues(req.Model).Add(float64(len(resp.Citations)))
	span.SetAttributes(attribute.Int("gemini.citations", len(resp.Citations)))

	m.logger.Debug("generate call completed", map[string]interface{}{
		"model":     req.Model,
		"duration":  time.Since(start).String(),
		"textBytes": len(resp.Text),
		"citations": len(resp.Citations),
	})
	return resp, nil
}

func buildContents(req *Request) []*genai.Content {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.IsInline() {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}
		parts = append(parts, &genai.Part{Text: p.Text})
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func buildConfig(req *Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   req.ResponseSchema.ToGenAI(),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	for _, t := range req.Tools {
		switch t {
		case ToolGoogleSearch:
			cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		case ToolGoogleMaps:
			cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
		}
	}
	return cfg
}

// responseText concatenates the first candidate's text parts, skipping thoughts.
func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}
	cand := result.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// extractCitations walks grounding chunks in order. Chunks missing a title or URI
// are skipped.
func extractCitations(result *genai.GenerateContentResponse) []Citation {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0] == nil {
		return nil
	}
	meta := result.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	var citations []Citation
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil && citable(chunk.Web.Title, chunk.Web.URI):
			citations = append(citations, Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
		case chunk.Maps != nil && citable(chunk.Maps.Title, chunk.Maps.URI):
			citations = append(citations, Citation{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		}
	}
	return citations
}

func citable(title, uri string) bool {
	return strings.TrimSpace(title) != "" && strings.TrimSpace(uri) != ""
}
