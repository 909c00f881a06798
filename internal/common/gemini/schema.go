// internal/common/gemini/schema.go
package gemini

import (
	"google.golang.org/genai"
)

// SchemaType is a JSON type name.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
)

// Schema declares the shape a structured response must have. It is sent to the
// model as the response schema and reused locally for strict validation.
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
	Minimum     *float64
	Maximum     *float64
	Nullable    bool
	// Ordering is the property order hint sent to the model.
	Ordering []string
}

// Float returns a pointer to v, for Minimum and Maximum.
func Float(v float64) *float64 {
	return &v
}

var genaiTypes = map[SchemaType]genai.Type{
	TypeObject:  genai.TypeObject,
	TypeArray:   genai.TypeArray,
	TypeString:  genai.TypeString,
	TypeNumber:  genai.TypeNumber,
	TypeInteger: genai.TypeInteger,
	TypeBoolean: genai.TypeBoolean,
}

// ToGenAI converts the schema to the SDK representation.
func (s *Schema) ToGenAI() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             genaiTypes[s.Type],
		Description:      s.Description,
		Enum:             s.Enum,
		Required:         s.Required,
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
		PropertyOrdering: s.Ordering,
		Items:            s.Items.ToGenAI(),
	}
	if s.Nullable {
		nullable := true
		out.Nullable = &nullable
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.ToGenAI()
		}
	}
	return out
}

// JSONSchema renders the schema as a JSON Schema document for gojsonschema.
// Nullable fields accept null; properties outside the declaration are allowed.
func (s *Schema) JSONSchema() map[string]interface{} {
	if s == nil {
		return nil
	}
	doc := map[string]interface{}{}
	if s.Nullable {
		doc["type"] = []interface{}{string(s.Type), "null"}
	} else {
		doc["type"] = string(s.Type)
	}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]interface{}, 0, len(s.Enum)+1)
		for _, v := range s.Enum {
			enum = append(enum, v)
		}
		if s.Nullable {
			enum = append(enum, nil)
		}
		doc["enum"] = enum
	}
	if s.Minimum != nil {
		doc["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		doc["maximum"] = *s.Maximum
	}
	if s.Items != nil {
		doc["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		required := make([]interface{}, len(s.Required))
		for i, r := range s.Required {
			required[i] = r
		}
		doc["required"] = required
	}
	return doc
}
