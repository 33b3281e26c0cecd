package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-revshare-engine/internal/mocks"
	"github.com/feral-file/ff-revshare-engine/internal/workflows"
)

func TestScheduleDividendCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	workerCore := mocks.NewMockCoreWorker(ctrl)
	run := mocks.NewMockWorkflowRun(ctrl)

	run.EXPECT().GetID().Return(workflows.DividendCronWorkflowID)
	run.EXPECT().GetRunID().Return("run-1")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, workflows.DividendCronWorkflowID, options.ID)
			assert.Equal(t, "revshare-dividends", options.TaskQueue)
			assert.Equal(t, "0 0 * * *", options.CronSchedule)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE, options.WorkflowIDReusePolicy)
			assert.False(t, options.WorkflowExecutionErrorWhenAlreadyStarted)
			return run, nil
		})

	err := workflows.ScheduleDividendCron(context.Background(), orchestrator, workerCore, workflows.ScheduleConfig{
		TaskQueue:    "revshare-dividends",
		CronSchedule: "0 0 * * *",
	})
	require.NoError(t, err)
}

func TestScheduleDividendCron_Errors(t *testing.T) {
	tests := []struct {
		name        string
		cfg         workflows.ScheduleConfig
		setupMocks  func(orchestrator *mocks.MockTemporalOrchestrator)
		errContains string
	}{
		{
			name:        "missing task queue",
			cfg:         workflows.ScheduleConfig{CronSchedule: "0 0 * * *"},
			errContains: "task queue is required",
		},
		{
			name:        "missing schedule",
			cfg:         workflows.ScheduleConfig{TaskQueue: "revshare-dividends"},
			errContains: "cron schedule is required",
		},
		{
			name: "temporal unavailable",
			cfg:  workflows.ScheduleConfig{TaskQueue: "revshare-dividends", CronSchedule: "0 0 * * *"},
			setupMocks: func(orchestrator *mocks.MockTemporalOrchestrator) {
				orchestrator.EXPECT().
					ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			errContains: "failed to schedule dividend workflow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(orchestrator)
			}

			err := workflows.ScheduleDividendCron(context.Background(), orchestrator, mocks.NewMockCoreWorker(ctrl), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
