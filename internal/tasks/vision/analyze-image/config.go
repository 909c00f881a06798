// internal/tasks/vision/analyze-image/config.go
package analyzeimage

// DefaultPrompt is used when the caller sends no prompt.
const DefaultPrompt = "Analyze this image in detail. List objects, detect text, and describe the scene."

type Config struct {
	Model         string
	DefaultPrompt string
	// MaxImageBytes bounds the decoded image; zero disables the check.
	MaxImageBytes int
}

func DefaultConfig(model string) *Config {
	return &Config{
		Model:         model,
		DefaultPrompt: DefaultPrompt,
		MaxImageBytes: 7 * 1024 * 1024,
	}
}
