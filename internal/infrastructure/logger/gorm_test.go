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

func TestGormLogger_TraceCarriesRequestIdentity(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, zap.NewNop(), "req-1")
	ctx, _ = WithUserID(ctx, zap.NewNop(), "user-7")

	gormLog.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE user_id = ?", 3
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "sql query", logs[0].Message)

	ctxMap := logs[0].ContextMap()
	assert.Equal(t, "req-1", ctxMap["request_id"])
	assert.Equal(t, "user-7", ctxMap["user_id"])
}

func TestGormLogger_TraceIgnoresRecordNotFound(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE user_id = ?", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceLogsErrors(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO orders VALUES (?)", 0
	}, errors.New("constraint violation"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "sql error", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_LogMode(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
	)

	changed := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	changedGorm, ok := changed.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, changedGorm.logLevel)
	assert.Equal(t, 500*time.Millisecond, changedGorm.slowThreshold)
}
