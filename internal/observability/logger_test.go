package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"l14flow/internal/config"
)

func TestJSONLoggerHonoursLevelAndName(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(config.LoggerConfig{
		Level:       "warn",
		Format:      "json",
		ServiceName: "l14flow",
	}, zapcore.AddSync(&buf))

	logger.Info("dropped")
	logger.Warn("kept", zap.Int("flows", 3))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "l14flow", entry["logger"])
	assert.EqualValues(t, 3, entry["flows"])
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(config.LoggerConfig{Level: "loud", Format: "console"}, zapcore.AddSync(&buf))
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "l14flow.log")
	var console bytes.Buffer
	logger := NewLoggerTo(config.LoggerConfig{
		Level:   "info",
		Format:  "console",
		LogFile: path,
		MaxSize: 1,
	}, zapcore.AddSync(&console))
	logger.Info("to both")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, console.String(), "to both")
}
