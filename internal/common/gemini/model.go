// internal/common/gemini/model.go

// Package gemini is the model-access contract shared by every task: one request
// in, generated text and grounding citations out.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud-api-console/internal/common/llmtext"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("model returned empty text")

// Tool is a live-retrieval capability the model may use while answering.
type Tool string

const (
	ToolGoogleSearch Tool = "google_search"
	ToolGoogleMaps   Tool = "google_maps"
)

// Part is one piece of user content: text, or inline bytes with a MIME type.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds an inline-data part. The bytes are passed through untouched.
func InlinePart(mimeType string, data []byte) Part {
	return Part{MIMEType: mimeType, Data: data}
}

// IsInline reports whether the part carries bytes rather than text.
func (p Part) IsInline() bool {
	return len(p.Data) > 0
}

// Request is a single generate call.
type Request struct {
	Model             string
	SystemInstruction string
	Parts             []Part
	Tools             []Tool
	ResponseMIMEType  string
	ResponseSchema    *Schema
}

// Validate checks that the request can be sent.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if len(r.Parts) == 0 {
		return fmt.Errorf("at least one content part is required")
	}
	if r.ResponseSchema != nil && r.ResponseMIMEType == "" {
		return fmt.Errorf("response schema requires a response MIME type")
	}
	return nil
}

// HasTool reports whether t was requested.
func (r *Request) HasTool(t Tool) bool {
	for _, tool := range r.Tools {
		if tool == t {
			return true
		}
	}
	return false
}

// Citation is a grounding source.
type Citation = llmtext.Citation

// Response is what the model produced.
type Response struct {
	Text      string
	Citations []Citation
}

// Model generates content. Implementations hold no per-call state and are safe
// for concurrent use.
type Model interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// GenerateText calls model and fails with ErrEmptyResponse when the trimmed text is empty.
func GenerateText(ctx context.Context, model Model, req *Request) (*Response, error) {
	resp, err := model.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}
