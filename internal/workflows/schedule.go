package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/logger"
	temporal "github.com/feral-file/ff-revshare-engine/internal/providers/temporal"
)

// DividendCronWorkflowID is the fixed ID of the scheduled dividend workflow.
// A single ID keeps scheduled rounds from overlapping.
const DividendCronWorkflowID = "dividend-distribution-cron"

// ScheduleConfig holds the cron registration parameters
type ScheduleConfig struct {
	TaskQueue    string
	CronSchedule string
}

// ScheduleDividendCron registers the dividend cron workflow. An already running
// cron execution is reused.
func ScheduleDividendCron(ctx context.Context, orchestrator temporal.TemporalOrchestrator, w WorkerCore, cfg ScheduleConfig) error {
	if cfg.TaskQueue == "" {
		return errors.New("task queue is required")
	}
	if cfg.CronSchedule == "" {
		return errors.New("cron schedule is required")
	}

	options := client.StartWorkflowOptions{
		ID:                    DividendCronWorkflowID,
		TaskQueue:             cfg.TaskQueue,
		CronSchedule:          cfg.CronSchedule,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		// Return the running execution instead of failing on restart
		WorkflowExecutionErrorWhenAlreadyStarted: false,
	}

	run, err := orchestrator.ExecuteWorkflow(ctx, options, w.DistributeDividends)
	if err != nil {
		return fmt.Errorf("failed to schedule dividend workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Dividend cron workflow scheduled",
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
		zap.String("schedule", cfg.CronSchedule),
		zap.String("task_queue", cfg.TaskQueue),
	)

	return nil
}
