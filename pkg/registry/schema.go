// pkg/registry/schema.go
package registry

// Category groups cards on the dashboard.
type Category string

const (
	CategoryMaps Category = "MAPS"
	CategoryAI   Category = "AI"
	CategoryData Category = "DATA"
)

// InputType is what a card's input box accepts.
type InputType string

const (
	InputText  InputType = "text"
	InputImage InputType = "image"
)

// Task types a card may run.
const (
	TaskMapsQuery    = "maps-query"
	TaskLiveSearch   = "live-search"
	TaskSimulateAPI  = "simulate-api"
	TaskAnalyzeImage = "analyze-image"
)

type Catalog struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Cards       []Card `json:"cards"`
}

type Card struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	TaskType    string   `json:"taskType"`
	// SimulatedAPI is the name the model role-plays; DisplayName is used when empty.
	SimulatedAPI string    `json:"simulatedApi,omitempty"`
	InputType    InputType `json:"inputType"`
	DefaultInput string    `json:"defaultInput"`
	Tags         []string  `json:"tags,omitempty"`
}
