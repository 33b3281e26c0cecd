package workflows

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
)

// DistributeDividends runs one dividend round as a single activity.
// A failed round is never retried here; the next scheduled tick claims whatever was released.
func (w *workerCore) DistributeDividends(ctx workflow.Context) (*domain.DistributionSummary, error) {
	logger.InfoWf(ctx, "Starting scheduled dividend round")

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: w.config.RoundTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var summary domain.DistributionSummary
	err := workflow.ExecuteActivity(ctx, w.executor.RunDividendRound).Get(ctx, &summary)
	if err != nil {
		logger.ErrorWf(ctx,
			fmt.Errorf("failed to distribute dividends"),
			zap.Error(err),
		)
		return nil, err
	}

	logger.InfoWf(ctx, "Scheduled dividend round finished",
		zap.String("roundId", summary.RoundID.String()),
		zap.Bool("skipped", summary.Skipped),
		zap.String("message", summary.Message),
		zap.Int("paid", summary.HoldersReceived),
		zap.Int("failed", summary.HoldersFailed),
		zap.Int("skippedHolders", summary.HoldersSkipped),
	)

	return &summary, nil
}
