// internal/tasks/social/social-search/models.go
package socialsearch

import "cloud-api-console/internal/common/gemini"

type Input struct {
	Query string `json:"query"`
}

// Profiles holds one URL per platform. A platform the model could not find is
// omitted rather than sent as null or "".
type Profiles struct {
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	Website   *string `json:"website,omitempty"`
}

type SocialProfileResult struct {
	EntityName string            `json:"entityName"`
	Summary    string            `json:"summary"`
	Profiles   Profiles          `json:"profiles"`
	Sources    []gemini.Citation `json:"sources"`
}

type Output = SocialProfileResult

func platformSchema() *gemini.Schema {
	return &gemini.Schema{Type: gemini.TypeString, Nullable: true}
}

var resultSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"entityName": {Type: gemini.TypeString},
		"summary":    {Type: gemini.TypeString, Nullable: true},
		"profiles": {
			Type:     gemini.TypeObject,
			Nullable: true,
			Properties: map[string]*gemini.Schema{
				"instagram": platformSchema(),
				"facebook":  platformSchema(),
				"linkedin":  platformSchema(),
				"twitter":   platformSchema(),
				"youtube":   platformSchema(),
				"website":   platformSchema(),
			},
		},
	},
	Required: []string{"entityName"},
}
