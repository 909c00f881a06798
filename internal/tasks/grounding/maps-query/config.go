// internal/tasks/grounding/maps-query/config.go
package mapsquery

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
