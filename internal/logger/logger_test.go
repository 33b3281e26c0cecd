package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := log
	log = zap.New(core)
	t.Cleanup(func() { log = prev })
	return logs
}

func TestInitialize(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	require.NoError(t, Initialize(Config{Debug: true, Service: "test"}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zapcore.DebugLevel))
}

func TestErrorCtx(t *testing.T) {
	logs := observe(t)

	ErrorCtx(context.Background(), errors.New("payout failed"), RoundID(uuid.Nil))
	ErrorCtx(context.Background(), nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "payout failed", entries[0].Message)
	assert.Equal(t, uuid.Nil.String(), entries[0].ContextMap()["round_id"])
	assert.Equal(t, "error occurred", entries[1].Message)
}

func TestFieldHelpers(t *testing.T) {
	logs := observe(t)

	id := uuid.New()
	InfoCtx(context.Background(), "tranche completed",
		StakeID(id), TrancheID(7), AllocationID(9), DeliveryID("abc"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, id.String(), fields["stake_id"])
	assert.Equal(t, int64(7), fields["tranche_id"])
	assert.Equal(t, int64(9), fields["allocation_id"])
	assert.Equal(t, "abc", fields["delivery_id"])
}

func TestWorkflowInfo_Fields(t *testing.T) {
	info := WorkflowInfo{
		WorkflowType: "DistributeDividendsWorkflow",
		WorkflowID:   "wf",
		RunID:        "run",
		Namespace:    "default",
		TaskQueue:    "q",
	}

	logs := observe(t)
	WithWorkflowInfo(info).Info("started")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "DistributeDividendsWorkflow", fields["workflow_type"])
	assert.Equal(t, "wf", fields["workflow_id"])
	assert.Equal(t, "q", fields["task_queue"])
}
