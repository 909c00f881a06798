// internal/tasks/social/social-search/config.go
package socialsearch

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
