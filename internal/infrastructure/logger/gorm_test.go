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

func newObservedGormLogger(t *testing.T, zapLevel zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapLevel)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func fabricQuery(rows int64) func() (string, int64) {
	return func() (string, int64) {
		return "SELECT * FROM fabrics WHERE code = $1", rows
	}
}

func TestNewGormLogger(t *testing.T) {
	gormLog, _ := newObservedGormLogger(t, zapcore.InfoLevel, gormlogger.Info)

	assert.NotNil(t, gormLog)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, 200*time.Millisecond, gormLog.slowThreshold)

	var _ gormlogger.Interface = gormLog
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(t, zapcore.InfoLevel, gormlogger.Info)
	newLogger := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)

	newGormLog, ok := newLogger.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, newGormLog.logLevel)
}

func TestGormLogger_Levels(t *testing.T) {
	t.Run("info passes at info level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.InfoLevel, gormlogger.Info)
		gormLog.Info(context.Background(), "migrated %s", "fabrics")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "migrated fabrics")
	})

	t.Run("silent suppresses info", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.InfoLevel, gormlogger.Silent)
		gormLog.Info(context.Background(), "migrated fabrics")

		assert.Empty(t, recorded.All())
	})

	t.Run("warn and error pass through at their levels", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.WarnLevel, gormlogger.Warn)
		gormLog.Warn(context.Background(), "stale version on %s", "FAB-001")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)

		gormLog, recorded = newObservedGormLogger(t, zapcore.ErrorLevel, gormlogger.Error)
		gormLog.Error(context.Background(), "connection lost")

		logs = recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed statement logs SQL Error", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.ErrorLevel, gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), fabricQuery(0), errors.New("deadlock detected"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.ErrorLevel, gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), fabricQuery(0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("slow statement logs at warn", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.WarnLevel, gormlogger.Warn,
			WithSlowThreshold(time.Nanosecond))

		begin := time.Now().Add(-time.Second)
		gormLog.Trace(context.Background(), begin, fabricQuery(10), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
	})

	t.Run("ordinary statement logs at debug", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.DebugLevel, gormlogger.Info)

		gormLog.Trace(context.Background(), time.Now(), fabricQuery(5), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Query", logs[0].Message)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.DebugLevel, gormlogger.Silent)

		gormLog.Trace(context.Background(), time.Now(), fabricQuery(5), nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("tags the request ID from context", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(t, zapcore.DebugLevel, gormlogger.Info)

		ctx := context.WithValue(context.Background(), RequestIDKey, "till-req-9")
		gormLog.Trace(ctx, time.Now(), fabricQuery(5), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)

		found := false
		for _, field := range logs[0].Context {
			if field.Key == "request_id" {
				found = true
				assert.Equal(t, "till-req-9", field.String)
			}
		}
		assert.True(t, found)
	})
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
