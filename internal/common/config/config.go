// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig             `mapstructure:"app"`
	Server        ServerConfig          `mapstructure:"server"`
	GenAI         GenAIConfig           `mapstructure:"genai"`
	Models        ModelsConfig          `mapstructure:"models"`
	Tasks         map[string]TaskConfig `mapstructure:"tasks"`
	State         StateConfig           `mapstructure:"state"`
	Database      DatabaseConfig        `mapstructure:"database"`
	Catalog       CatalogConfig         `mapstructure:"catalog"`
	Logging       LoggingConfig         `mapstructure:"logging"`
	Observability ObservabilityConfig   `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string    `mapstructure:"address"`
	ReadTimeout     int       `mapstructure:"read_timeout"`     // milliseconds
	ShutdownTimeout int       `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes    int64     `mapstructure:"max_body_bytes"`
	AllowedOrigins  []string  `mapstructure:"allowed_origins"`
	TrustedProxies  []string  `mapstructure:"trusted_proxies"`
	RateLimit       RateLimit `mapstructure:"rate_limit"`
}

// RateLimit is a per-client token bucket keyed by client IP.
type RateLimit struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// GenAIConfig holds the model endpoint credential. APIKey has no default.
type GenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds, 0 disables the client deadline
}

// ModelsConfig names the model used for each call family.
type ModelsConfig struct {
	Vision string `mapstructure:"vision"`
	Text   string `mapstructure:"text"`
	Maps   string `mapstructure:"maps"`
}

// TaskConfig holds per-task switches.
type TaskConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// StateConfig selects where request-state snapshots live.
type StateConfig struct {
	Backend string `mapstructure:"backend"` // memory | redis
	TTL     int    `mapstructure:"ttl"`      // seconds
	LockTTL int    `mapstructure:"lock_ttl"` // seconds; defaults to the model timeout plus a margin
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CatalogConfig points at an optional JSON catalog replacing the built-in cards.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}
