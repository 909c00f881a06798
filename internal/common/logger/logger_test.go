// internal/common/logger/logger_test.go
package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToConfiguredOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	zl, err := New("warn", "json", path)
	require.NoError(t, err)

	log := NewZapAdapter(zl)
	log.Info("dropped below level", nil)
	log.Warn("model call slow", map[string]interface{}{"taskType": "live-search"})
	require.NoError(t, zl.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"model call slow"`)
	assert.Contains(t, string(raw), `"taskType":"live-search"`)
	assert.NotContains(t, string(raw), "dropped below level")
}

func TestNew_DefaultsToStdout(t *testing.T) {
	for _, output := range []string{"", "stdout", "stderr"} {
		zl, err := New("info", "console", output)
		require.NoError(t, err, output)
		assert.NotNil(t, zl)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}
