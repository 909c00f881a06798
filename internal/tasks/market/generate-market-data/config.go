// internal/tasks/market/generate-market-data/config.go
package generatemarketdata

type Config struct {
	Model string
}

func DefaultConfig(model string) *Config {
	return &Config{Model: model}
}
