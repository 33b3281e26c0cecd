package dividend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/payout"
)

// Round outcome messages
const (
	MessageNoRevenue = "No revenue to distribute this period"
	MessageNoStakes  = "No active stakes to distribute to"
	MessageCompleted = "Dividend distribution completed"
)

// Config holds dividend round configuration
type Config struct {
	// Rate is the fraction of revenue paid out as dividends
	Rate money.Rate
	// Window is how far back pending revenue is claimed
	Window time.Duration
}

// Distributor runs one dividend round end to end
//
//go:generate mockgen -source=distributor.go -destination=../mocks/distributor.go -package=mocks -mock_names=Distributor=MockDistributor
type Distributor interface {
	// Distribute claims revenue, pays holders and records the round
	Distribute(ctx context.Context) (*domain.DistributionSummary, error)
}

type distributor struct {
	cfg        Config
	ledger     Ledger
	calculator Calculator
	executor   payout.Executor
	recorder   Recorder
	publisher  messaging.Publisher
	clock      adapter.Clock
}

// NewDistributor creates a new dividend distributor
func NewDistributor(
	cfg Config,
	ledger Ledger,
	calculator Calculator,
	executor payout.Executor,
	recorder Recorder,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Distributor {
	if cfg.Window <= 0 {
		cfg.Window = domain.DEFAULT_DISTRIBUTION_WINDOW
	}
	return &distributor{
		cfg:        cfg,
		ledger:     ledger,
		calculator: calculator,
		executor:   executor,
		recorder:   recorder,
		publisher:  publisher,
		clock:      clock,
	}
}

func (d *distributor) Distribute(ctx context.Context) (*domain.DistributionSummary, error) {
	roundID := uuid.New()
	logger.InfoCtx(ctx, "Starting dividend round", logger.RoundID(roundID), zap.Duration("window", d.cfg.Window))

	// 1. Claim revenue
	revenue, err := d.ledger.ClaimAccumulatedRevenue(ctx, roundID, d.cfg.Window)
	if err != nil {
		return nil, d.abort(ctx, roundID, err)
	}

	summary := &domain.DistributionSummary{RoundID: roundID, Revenue: revenue}
	if revenue == 0 {
		logger.InfoCtx(ctx, "No revenue to distribute", logger.RoundID(roundID))
		summary.Skipped = true
		summary.Message = MessageNoRevenue
		return summary, nil
	}

	pool, err := d.cfg.Rate.Apply(revenue)
	if err != nil {
		return nil, d.abort(ctx, roundID, fmt.Errorf("failed to compute dividend pool: %w", err))
	}
	summary.DividendPool = pool

	// 2. Compute ownership and amounts
	entries, totalStaked, err := d.calculator.CalculateOwnership(ctx)
	if err != nil {
		return nil, d.abort(ctx, roundID, err)
	}
	if len(entries) == 0 {
		logger.InfoCtx(ctx, "No active stakes, returning revenue to pending", logger.RoundID(roundID))
		if err := d.ledger.ReleaseClaim(ctx, roundID); err != nil {
			return nil, err
		}
		summary.Skipped = true
		summary.Message = MessageNoStakes
		return summary, nil
	}

	amounts, remainder, err := Allocate(pool, entries)
	if err != nil {
		return nil, d.abort(ctx, roundID, err)
	}
	summary.Remainder = remainder

	// 3. Cap table
	d.recorder.UpdateCapTable(ctx, roundID, entries)

	// 4. Payout
	payouts := make([]domain.HolderPayout, len(entries))
	for i, e := range entries {
		payouts[i] = domain.HolderPayout{
			StakeID:  e.StakeID,
			UserID:   e.UserID,
			Amount:   amounts[i],
			SharePPM: e.Share.PPM(),
		}
	}

	result, err := d.executor.Execute(ctx, roundID, payouts)
	if err != nil {
		return nil, d.abort(ctx, roundID, err)
	}

	// 5. Audit record and bookkeeping; payouts may already be settled, so nothing is released from here on
	at := d.clock.Now().UTC()
	_, err = d.recorder.RecordDistribution(ctx, DistributionInput{
		RoundID:     roundID,
		Revenue:     revenue,
		Pool:        pool,
		Remainder:   remainder,
		TotalStaked: totalStaked,
		Rate:        d.cfg.Rate,
		Payouts:     result.Payouts,
		At:          at,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("round settled but not recorded: %w", err),
			logger.RoundID(roundID),
			zap.Int("paid", result.SuccessCount))
		return nil, err
	}

	summary.HoldersReceived = result.SuccessCount
	summary.HoldersFailed = result.FailureCount
	summary.HoldersSkipped = result.SkippedCount
	summary.Message = MessageCompleted

	logger.InfoCtx(ctx, "Dividend round completed",
		logger.RoundID(roundID),
		zap.Stringer("revenue", revenue),
		zap.Stringer("pool", pool),
		zap.Stringer("remainder", remainder),
		zap.Int("paid", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.Int("skipped", result.SkippedCount))

	event := messaging.NewEvent(messaging.EventTypeDividendsDistributed, roundID.String(), at, summary)
	if err := d.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish distribution event", logger.RoundID(roundID), zap.Error(err))
	}

	return summary, nil
}

// abort returns the round's revenue to pending and passes the cause through
func (d *distributor) abort(ctx context.Context, roundID uuid.UUID, cause error) error {
	logger.ErrorCtx(ctx, fmt.Errorf("dividend round aborted: %w", cause), logger.RoundID(roundID))
	if err := d.ledger.ReleaseClaim(ctx, roundID); err != nil {
		logger.ErrorCtx(ctx, err, logger.RoundID(roundID))
	}
	return cause
}
