package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesFileLog(t *testing.T) {
	t.Cleanup(func() {
		Logger = zap.NewNop()
		consoleLogger = zap.NewNop()
	})

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(dir, "info"))

	LogInfo("Chart saved", zap.String("path", "etc/charts/chart.png"), zap.Int64("size_bytes", 2048))
	LogDebug("below the file level")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "chart.log"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "INFO Chart saved\t")
	assert.Contains(t, out, `"path":"etc/charts/chart.png"`)
	assert.Contains(t, out, `"size_bytes":2048`)
	assert.NotContains(t, out, "below the file level")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(t.TempDir(), "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestExtractDuration(t *testing.T) {
	assert.Equal(t, int64(42), extractDuration([]zap.Field{zap.String("a", "b"), zap.Int64("duration_ms", 42)}))
	assert.Zero(t, extractDuration([]zap.Field{zap.Float64("duration_ms", 42)}))
}

func TestLoggersAreNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		LogSuccess("ok", zap.Int64("duration_ms", 3))
		LogError("boom")
		LogWarn("careful")
	})
}
