package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "zero config falls back to defaults", cfg: &Config{}},
		{
			name: "console with custom layout",
			cfg:  &Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "2006-01-02T15:04:05Z07:00"},
		},
		{
			name: "json to stderr",
			cfg:  &Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "2006-01-02T15:04:05Z07:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFor(tt.level))
		})
	}
}

func TestEncoderFor(t *testing.T) {
	assert.NotNil(t, encoderFor(&Config{Format: "console"}))
	assert.NotNil(t, encoderFor(&Config{Format: "json"}))
	assert.NotNil(t, encoderFor(&Config{}), "empty format still encodes")
}

func TestWriterFor(t *testing.T) {
	assert.NotNil(t, writerFor("stdout"))
	assert.NotNil(t, writerFor("STDERR"))
	assert.NotNil(t, writerFor(""))

	path := filepath.Join(t.TempDir(), "edge.log")
	assert.NotNil(t, writerFor(path))
	_, err := os.Stat(path)
	assert.NoError(t, err, "file destination is created")
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		encoderFor(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	logger := zap.New(core)

	logger.Info("order persisted", zap.String("order_id", "o-1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order persisted", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "o-1", entry["order_id"])
	assert.NotEmpty(t, entry["time"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		encoderFor(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		levelFor("warn"),
	)
	logger := zap.New(core)

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestSync(t *testing.T) {
	logger, err := New(&Config{Format: "json", Output: filepath.Join(t.TempDir(), "edge.log")})
	require.NoError(t, err)

	logger.Info("before flush")
	assert.NoError(t, Sync(logger))
}
