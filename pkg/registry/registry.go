// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ImagePrompt is the instruction sent with an image card's upload.
const ImagePrompt = "Analyze this image."

// resultPaths locates the human-readable result in each task's JSON output.
var resultPaths = map[string]string{
	TaskMapsQuery:    "text",
	TaskLiveSearch:   "text",
	TaskSimulateAPI:  "output",
	TaskAnalyzeImage: "analysis",
}

// LoadRegistry reads a catalog file. Callers fall back to Builtin when the file
// does not exist.
func LoadRegistry(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// LoadOrBuiltin loads path when set and present, otherwise the built-in catalog.
func LoadOrBuiltin(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	c, err := LoadRegistry(path)
	if os.IsNotExist(err) {
		return Builtin(), nil
	}
	return c, err
}

// Save writes the catalog as indented JSON, creating parent directories.
func (c *Catalog) Save(path string) error {
	c.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Filter returns the cards in category, in catalog order. An empty category
// returns every card.
func (c *Catalog) Filter(category Category) []Card {
	out := make([]Card, 0, len(c.Cards))
	for _, card := range c.Cards {
		if category == "" || strings.EqualFold(string(card.Category), string(category)) {
			out = append(out, card)
		}
	}
	return out
}

// Find returns the card with id.
func (c *Catalog) Find(id string) (Card, bool) {
	for _, card := range c.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// Add appends card after validating it against the rest of the catalog.
func (c *Catalog) Add(card Card) error {
	if _, exists := c.Find(card.ID); exists {
		return fmt.Errorf("card with ID %s already exists", card.ID)
	}
	if err := card.Validate(); err != nil {
		return err
	}
	c.Cards = append(c.Cards, card)
	return nil
}

// Validate checks ids are unique and every card is runnable.
func (c *Catalog) Validate() error {
	if len(c.Cards) == 0 {
		return fmt.Errorf("catalog contains no cards")
	}
	ids := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		if ids[card.ID] {
			return fmt.Errorf("duplicate card ID: %s", card.ID)
		}
		ids[card.ID] = true
		if err := card.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (card Card) Validate() error {
	if card.ID == "" {
		return fmt.Errorf("card missing required field: id")
	}
	if card.DisplayName == "" {
		return fmt.Errorf("card %s missing required field: displayName", card.ID)
	}
	switch card.Category {
	case CategoryMaps, CategoryAI, CategoryData:
	default:
		return fmt.Errorf("card %s has unknown category %q", card.ID, card.Category)
	}
	if _, ok := resultPaths[card.TaskType]; !ok {
		return fmt.Errorf("card %s has unsupported taskType %q", card.ID, card.TaskType)
	}
	switch card.InputType {
	case InputText, InputImage:
	default:
		return fmt.Errorf("card %s has unknown inputType %q", card.ID, card.InputType)
	}
	if (card.InputType == InputImage) != (card.TaskType == TaskAnalyzeImage) {
		return fmt.Errorf("card %s: image input is only valid for %s", card.ID, TaskAnalyzeImage)
	}
	return nil
}

// APIName is the name the model is asked to act as.
func (card Card) APIName() string {
	if card.SimulatedAPI != "" {
		return card.SimulatedAPI
	}
	return card.DisplayName
}

// Variables builds the task input for one run. An empty input falls back to the
// card default; image cards have no default and require an upload.
func (card Card) Variables(input string) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		input = card.DefaultInput
	}
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("card %s requires input", card.ID)
	}

	var vars interface{}
	switch card.TaskType {
	case TaskMapsQuery, TaskLiveSearch:
		vars = map[string]string{"query": input}
	case TaskSimulateAPI:
		vars = map[string]string{"apiName": card.APIName(), "input": input}
	case TaskAnalyzeImage:
		vars = map[string]string{"imageBase64": input, "prompt": ImagePrompt}
	default:
		return nil, fmt.Errorf("card %s has unsupported taskType %q", card.ID, card.TaskType)
	}
	return json.Marshal(vars)
}

// ResultText pulls the displayable text out of the task's JSON output.
func (card Card) ResultText(output []byte) string {
	path, ok := resultPaths[card.TaskType]
	if !ok {
		return string(output)
	}
	return gjson.GetBytes(output, path).String()
}
