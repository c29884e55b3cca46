package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigDefaults(t *testing.T) {
	dev := DefaultConfig()
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "stdout", dev.Output)
	assert.Equal(t, "info", dev.Level)

	prod := ProductionConfig()
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "stdout", prod.Output)
	assert.NotEmpty(t, prod.TimeFormat)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "production config", cfg: ProductionConfig()},
		{name: "debug console", cfg: &Config{Level: "debug", Format: "console", Output: "stdout"}},
		{name: "json to stderr", cfg: &Config{Level: "warn", Format: "json", Output: "stderr"}},
		{name: "empty time format falls back", cfg: &Config{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			log, err := NewForEnvironment(env)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
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
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewSink(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "STDOUT", ""} {
		assert.NotNil(t, newSink(output))
	}

	tmpFile, err := os.CreateTemp("", "baogia-*.log")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()
	assert.NotNil(t, newSink(tmpFile.Name()))
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		newEncoder(ProductionConfig()),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	log := zap.New(core)

	log.Info("quote created",
		zap.String("quote_number", "NVA150126-X7K2"),
		zap.String("customer", "Nguyễn Văn An"),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quote created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "NVA150126-X7K2", entry["quote_number"])
	assert.Equal(t, "Nguyễn Văn An", entry["customer"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		newEncoder(ProductionConfig()),
		zapcore.AddSync(&buf),
		parseLevel("warn"),
	)
	log := zap.New(core)

	log.Info("draft saved")
	assert.Empty(t, buf.String())

	log.Warn("pdf render retried")
	assert.Contains(t, buf.String(), "pdf render retried")
}
