// internal/tasks/market/generate-market-data/models.go
package generatemarketdata

import "cloud-api-console/internal/common/gemini"

type Input struct {
	Query string `json:"query"`
}

// DataPoint is one chart entry.
type DataPoint struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Category string  `json:"category,omitempty"`
}

// ChartData is the structured dataset rendered by the dashboard charts.
type ChartData struct {
	Summary string      `json:"summary"`
	Data    []DataPoint `json:"data"`
}

// Output is the chart dataset itself.
type Output = ChartData

var chartSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"summary": {Type: gemini.TypeString},
		"data": {
			Type: gemini.TypeArray,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"name":     {Type: gemini.TypeString},
					"value":    {Type: gemini.TypeNumber},
					"category": {Type: gemini.TypeString},
				},
				Required: []string{"name", "value"},
				Ordering: []string{"name", "value", "category"},
			},
		},
	},
	Required: []string{"summary", "data"},
	Ordering: []string{"summary", "data"},
}
