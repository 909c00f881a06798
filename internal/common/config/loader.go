// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultVisionModel = "gemini-2.5-flash-image"
	DefaultTextModel   = "gemini-3-flash-preview"
	DefaultMapsModel   = "gemini-2.5-flash"

	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml and applies env overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	v.SetDefault("observability.metrics_enabled", true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindEnvKeys registers keys AutomaticEnv cannot discover when no config file declares them.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"genai.api_key", "genai.base_url", "genai.timeout",
		"server.address", "state.backend",
		"database.redis.address", "database.redis.password",
		"logging.level", "logging.format",
		"observability.jaeger_endpoint", "catalog.path",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			v.Set(key, os.ExpandEnv(strVal))
		}
	}
}

// overrideEmptyConfig accepts the conventional credential variable names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		for _, name := range []string{"GENAI_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
			if val := os.Getenv(name); val != "" {
				cfg.GenAI.APIKey = val
				break
			}
		}
	}
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDR"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cloud-api-console"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 10 << 20
	}
	if cfg.Server.RateLimit.RequestsPerSecond == 0 {
		cfg.Server.RateLimit.RequestsPerSecond = 2
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 5
	}

	if cfg.Models.Vision == "" {
		cfg.Models.Vision = DefaultVisionModel
	}
	if cfg.Models.Text == "" {
		cfg.Models.Text = DefaultTextModel
	}
	if cfg.Models.Maps == "" {
		cfg.Models.Maps = DefaultMapsModel
	}

	if cfg.State.Backend == "" {
		cfg.State.Backend = StateBackendMemory
	}
	if cfg.State.TTL == 0 {
		cfg.State.TTL = 3600
	}
	if cfg.State.LockTTL == 0 {
		cfg.State.LockTTL = 120
		if cfg.GenAI.Timeout > 0 {
			cfg.State.LockTTL = cfg.GenAI.Timeout/1000 + 30
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.GenAI.APIKey) == "" {
		return fmt.Errorf("genai.api_key is required (set GENAI_API_KEY)")
	}
	if cfg.GenAI.Timeout < 0 {
		return fmt.Errorf("genai.timeout must not be negative")
	}

	switch cfg.State.Backend {
	case StateBackendMemory:
	case StateBackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required when state.backend is redis")
		}
	default:
		return fmt.Errorf("state.backend must be %q or %q, got %q", StateBackendMemory, StateBackendRedis, cfg.State.Backend)
	}

	if cfg.Server.RateLimit.RequestsPerSecond < 0 || cfg.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit values must not be negative")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetTaskConfig returns the task's settings, enabled by default.
func GetTaskConfig(cfg *Config, taskType string) TaskConfig {
	if task, exists := cfg.Tasks[taskType]; exists {
		return task
	}
	return TaskConfig{Enabled: true}
}

// IsTaskEnabled reports whether a task may be served.
func IsTaskEnabled(cfg *Config, taskType string) bool {
	return GetTaskConfig(cfg, taskType).Enabled
}

// ModelFor resolves the model for a task, preferring the per-task override.
func ModelFor(cfg *Config, taskType, fallback string) string {
	if model := GetTaskConfig(cfg, taskType).Model; model != "" {
		return model
	}
	return fallback
}
