// internal/tasks/audit/site-audit/config.go
package siteaudit

type Config struct {
	Model string
	// ResourceCount is how many report sections the prompt asks for.
	ResourceCount int
}

func DefaultConfig(model string) *Config {
	return &Config{
		Model:         model,
		ResourceCount: 12,
	}
}
