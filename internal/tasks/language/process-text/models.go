// internal/tasks/language/process-text/models.go
package processtext

// Mode selects which language API is being simulated.
type Mode string

const (
	ModeTranslate Mode = "TRANSLATE"
	ModeSentiment Mode = "SENTIMENT"
	ModeQA        Mode = "QA"
)

type Input struct {
	Text       string `json:"text"`
	Task       Mode   `json:"task"`
	TargetLang string `json:"targetLang,omitempty"`
}

type Output struct {
	Result string `json:"result"`
}
