// internal/tasks/business/business-profile/config.go
package businessprofile

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
