// internal/tasks/grounding/live-search/config.go
package livesearch

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
