// internal/tasks/language/process-text/config.go
package processtext

type Config struct {
	Model             string
	DefaultTargetLang string
}

func DefaultConfig(model string) *Config {
	return &Config{
		Model:             model,
		DefaultTargetLang: "English",
	}
}
