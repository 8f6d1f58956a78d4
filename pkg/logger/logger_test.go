package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })
	return logs
}

func TestInitialize(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Initialize(Config{Level: "warn", Environment: "production", ServiceName: "findie-functions"}))
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Log.Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Initialize(Config{Level: "nonsense", Environment: "development"}))
	assert.True(t, Log.Core().Enabled(zapcore.InfoLevel))
}

func TestAudit(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	Audit("identity_verification", "user-1", map[string]interface{}{"status": "approved"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "audit", fields["type"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "approved", fields["status"])
}

func TestPerformance_SlowOperationWarns(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	Performance("expire_posts", 2*time.Second, nil)
	Performance("expire_posts", time.Millisecond, nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.DebugLevel, logs.All()[1].Level)
}

func TestWithFunction(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	WithFunction("auto-expire-posts").Info("Deleted expired posts")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "auto-expire-posts", logs.All()[0].ContextMap()["function"])
}
