package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestCarriesContextIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{zap: zap.New(core)}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, SessionIDKey, "sess-1")
	l.WithRequest(ctx, "GET", "/api/v1/session", "127.0.0.1", 200, "1ms", 42).Info("HTTP Request Processed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["X-TRACE-ID"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, int64(200), fields["statusCode"])
	assert.NotContains(t, fields, "user_id")
}

func TestNewLoggerLevel(t *testing.T) {
	l := NewLogger("production", "warn")
	assert.False(t, l.Zap().Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Zap().Core().Enabled(zap.WarnLevel))
}
