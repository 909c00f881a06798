// internal/tasks/lab/simulate-api/config.go
package simulateapi

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
