// internal/tasks/audit/site-audit/models.go
package siteaudit

import "cloud-api-console/internal/common/gemini"

type Input struct {
	URL string `json:"url"`
}

// Status grades one audited resource.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusFair      Status = "Fair"
	StatusPoor      Status = "Poor"
)

type WebRiskStatus struct {
	Safe    bool     `json:"safe"`
	Threats []string `json:"threats"`
	Details string   `json:"details"`
}

type Resource struct {
	Title          string  `json:"title"`
	Score          float64 `json:"score"`
	Status         Status  `json:"status"`
	Details        string  `json:"details"`
	Recommendation string  `json:"recommendation"`
}

type AuditReport struct {
	Domain         string            `json:"domain"`
	OverallScore   float64           `json:"overallScore"`
	Summary        string            `json:"summary"`
	WebRiskStatus  WebRiskStatus     `json:"webRiskStatus"`
	DetectedImages []string          `json:"detectedImages"`
	Resources      []Resource        `json:"resources"`
	Sources        []gemini.Citation `json:"sources"`
}

type Output = AuditReport

func scoreSchema() *gemini.Schema {
	return &gemini.Schema{
		Type:        gemini.TypeNumber,
		Description: "0 to 100",
		Minimum:     gemini.Float(0),
		Maximum:     gemini.Float(100),
	}
}

var auditSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"domain":       {Type: gemini.TypeString},
		"overallScore": scoreSchema(),
		"summary":      {Type: gemini.TypeString},
		"webRiskStatus": {
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"safe":    {Type: gemini.TypeBoolean},
				"threats": {Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeString}},
				"details": {Type: gemini.TypeString},
			},
			Required: []string{"safe", "threats", "details"},
			Ordering: []string{"safe", "threats", "details"},
		},
		"detectedImages": {
			Type:        gemini.TypeArray,
			Description: "List of image URLs (logos, screenshots) found for this site.",
			Items:       &gemini.Schema{Type: gemini.TypeString},
		},
		"resources": {
			Type: gemini.TypeArray,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"title": {Type: gemini.TypeString},
					"score": scoreSchema(),
					"status": {
						Type: gemini.TypeString,
						Enum: []string{string(StatusExcellent), string(StatusGood), string(StatusFair), string(StatusPoor)},
					},
					"details":        {Type: gemini.TypeString},
					"recommendation": {Type: gemini.TypeString},
				},
				Required: []string{"title", "score", "status", "details", "recommendation"},
				Ordering: []string{"title", "score", "status", "details", "recommendation"},
			},
		},
	},
	Required: []string{"domain", "overallScore", "summary", "webRiskStatus", "detectedImages", "resources"},
	Ordering: []string{"domain", "overallScore", "summary", "webRiskStatus", "detectedImages", "resources"},
}
