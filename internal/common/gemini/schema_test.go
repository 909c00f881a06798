// internal/common/gemini/schema_test.go
package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func sampleSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"score":  {Type: TypeNumber, Minimum: Float(0), Maximum: Float(100)},
			"status": {Type: TypeString, Enum: []string{"Good", "Poor"}},
			"link":   {Type: TypeString, Nullable: true},
			"tags":   {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"score"},
		Ordering: []string{"score", "status", "link", "tags"},
	}
}

func TestSchema_ToGenAI(t *testing.T) {
	s := sampleSchema().ToGenAI()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"score"}, s.Required)
	assert.Equal(t, []string{"score", "status", "link", "tags"}, s.PropertyOrdering)
	require.Contains(t, s.Properties, "score")
	assert.Equal(t, 100.0, *s.Properties["score"].Maximum)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)
	require.NotNil(t, s.Properties["link"].Nullable)
	assert.True(t, *s.Properties["link"].Nullable)

	var nilSchema *Schema
	assert.Nil(t, nilSchema.ToGenAI())
}

func TestSchema_JSONSchema(t *testing.T) {
	doc := sampleSchema().JSONSchema()

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []interface{}{"score"}, doc["required"])

	props := doc["properties"].(map[string]interface{})
	score := props["score"].(map[string]interface{})
	assert.Equal(t, 0.0, score["minimum"])
	assert.Equal(t, 100.0, score["maximum"])

	link := props["link"].(map[string]interface{})
	assert.Equal(t, []interface{}{"string", "null"}, link["type"])

	status := props["status"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Good", "Poor"}, status["enum"])
}
