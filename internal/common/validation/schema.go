// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult collects schema violations for one document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateDocument checks a decoded JSON value against a JSON Schema document.
func ValidateDocument(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// DecodeStrict parses text as a single JSON value, validates it against schema and
// unmarshals it into out. Leading fences, truncation and trailing data all fail.
func DecodeStrict(text string, schema map[string]interface{}, out interface{}) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var document interface{}
	if err := dec.Decode(&document); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("parse model output: unexpected data after JSON value")
	}

	result, err := ValidateDocument(schema, document)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("model output does not match schema: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}
