// internal/tasks/business/business-profile/models.go
package businessprofile

import "cloud-api-console/internal/common/gemini"

type Input struct {
	BusinessName string `json:"businessName"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Review struct {
	Author       string  `json:"author"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	RelativeTime string  `json:"relativeTime"`
}

type BusinessProfile struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	Category    string            `json:"category"`
	IsOpen      bool              `json:"isOpen"`
	PhoneNumber string            `json:"phoneNumber"`
	Website     string            `json:"website"`
	Summary     string            `json:"summary"`
	Location    Location          `json:"location"`
	Reviews     []Review          `json:"reviews"`
	Sources     []gemini.Citation `json:"sources"`
}

type Output = BusinessProfile

// profileSchema is checked locally only. Maps grounding does not accept a
// response schema, so the shape is requested in the prompt and fields the
// model could not find may come back null.
var profileSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"name":        {Type: gemini.TypeString},
		"address":     {Type: gemini.TypeString, Nullable: true},
		"rating":      {Type: gemini.TypeNumber, Nullable: true, Minimum: gemini.Float(0), Maximum: gemini.Float(5)},
		"reviewCount": {Type: gemini.TypeInteger, Nullable: true, Minimum: gemini.Float(0)},
		"category":    {Type: gemini.TypeString, Nullable: true},
		"isOpen":      {Type: gemini.TypeBoolean, Nullable: true},
		"phoneNumber": {Type: gemini.TypeString, Nullable: true},
		"website":     {Type: gemini.TypeString, Nullable: true},
		"summary":     {Type: gemini.TypeString, Nullable: true},
		"location": {
			Type:     gemini.TypeObject,
			Nullable: true,
			Properties: map[string]*gemini.Schema{
				"lat": {Type: gemini.TypeNumber},
				"lng": {Type: gemini.TypeNumber},
			},
			Required: []string{"lat", "lng"},
		},
		"reviews": {
			Type:     gemini.TypeArray,
			Nullable: true,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"author":       {Type: gemini.TypeString, Nullable: true},
					"rating":       {Type: gemini.TypeNumber, Nullable: true},
					"text":         {Type: gemini.TypeString, Nullable: true},
					"relativeTime": {Type: gemini.TypeString, Nullable: true},
				},
			},
		},
	},
	Required: []string{"name"},
}
