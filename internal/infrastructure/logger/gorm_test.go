package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func quoteLookup() (string, int64) {
	return "SELECT * FROM quotes WHERE quote_number = 'NVA150126-X7K2'", 1
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreNotFoundErrs)
}

func TestGormLogger_LogModeClones(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)

	quieter, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, quieter.logLevel)
}

func TestGormLogger_Levels(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)
	ctx := context.Background()

	gl.Info(ctx, "migrated %d tables", 17)
	gl.Warn(ctx, "connection pool nearly exhausted")
	gl.Error(ctx, "dialect mismatch")

	logs := recorded.All()
	require.Len(t, logs, 3)
	assert.Contains(t, logs[0].Message, "migrated 17 tables")
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs[2].Level)
}

func TestGormLogger_SilentSuppressesEverything(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)
	ctx := context.Background()

	gl.Info(ctx, "invisible")
	gl.Trace(ctx, time.Now(), quoteLookup, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_Error(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), quoteLookup, errors.New("relation does not exist"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "query failed", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_Trace_RecordNotFoundIgnored(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(true))

	gl.Trace(context.Background(), time.Now(), quoteLookup, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_RecordNotFoundLoggedWhenConfigured(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

	gl.Trace(context.Background(), time.Now(), quoteLookup, gormlogger.ErrRecordNotFound)

	require.Len(t, recorded.All(), 1)
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	begin := time.Now().Add(-time.Second)
	gl.Trace(context.Background(), begin, quoteLookup, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "slow query")
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLogger_Trace_NormalQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), quoteLookup, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "query", logs[0].Message)
	assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
}

func TestGormLogger_Trace_CarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-bg-456")
	gl.Trace(ctx, time.Now(), quoteLookup, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	var requestID string
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			requestID = field.String
		}
	}
	assert.Equal(t, "req-bg-456", requestID)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}

func TestGormLoggerImplementsInterface(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	var _ gormlogger.Interface = gl
}
