// internal/tasks/grounding/maps-query/models.go
package mapsquery

import "cloud-api-console/internal/common/gemini"

type Input struct {
	Query string `json:"query"`
}

// Output holds the answer with a Markdown source list appended, plus the raw citations.
type Output struct {
	Text    string            `json:"text"`
	Sources []gemini.Citation `json:"sources"`
}
