package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	temporal "github.com/feral-file/ff-revshare-engine/internal/providers/temporal"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := temporal.NewZapLoggerAdapter(zap.New(core))

	adapter.Debug("debug", "WorkflowID", "dividend-distribution-cron")
	adapter.Info("info", "Attempt", 1)
	adapter.Warn("warn")
	adapter.Error("error", "Error", "boom", "dangling")

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "dividend-distribution-cron", entries[0].ContextMap()["WorkflowID"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.EqualValues(t, 1, entries[1].ContextMap()["Attempt"])

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Empty(t, entries[2].Context)

	// Odd keyvals drop the trailing key
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, map[string]interface{}{"Error": "boom"}, entries[3].ContextMap())
}

func TestZapLoggerAdapter_SkipsNonStringKeys(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	adapter := temporal.NewZapLoggerAdapter(zap.New(core))

	adapter.Info("info", 42, "ignored", "TaskQueue", "revshare-dividends")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{"TaskQueue": "revshare-dividends"}, entries[0].ContextMap())
}
