package dividend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// Ledger claims accumulated platform revenue for a round
type Ledger interface {
	// ClaimAccumulatedRevenue marks every pending record inside the window as consumed by the round
	// and returns their total. Zero means there is nothing to distribute.
	ClaimAccumulatedRevenue(ctx context.Context, roundID uuid.UUID, window time.Duration) (money.Satoshis, error)
	// ReleaseClaim returns a round's records to pending; used when a round aborts before any payout
	ReleaseClaim(ctx context.Context, roundID uuid.UUID) error
}

type ledger struct {
	store store.RevenueStore
	clock adapter.Clock
}

// NewLedger creates a new revenue ledger
func NewLedger(s store.RevenueStore, clock adapter.Clock) Ledger {
	return &ledger{store: s, clock: clock}
}

func (l *ledger) ClaimAccumulatedRevenue(ctx context.Context, roundID uuid.UUID, window time.Duration) (money.Satoshis, error) {
	now := l.clock.Now().UTC()
	since := now.Add(-window)

	records, err := l.store.ClaimPendingRevenue(ctx, roundID, since, now)
	if err != nil {
		return 0, fmt.Errorf("failed to claim revenue for round %s: %w", roundID, err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	amounts := make([]money.Satoshis, 0, len(records))
	for _, r := range records {
		if r.AmountSatoshis < 0 {
			return 0, fmt.Errorf("revenue record %d has negative amount %d", r.ID, r.AmountSatoshis)
		}
		amounts = append(amounts, money.Satoshis(r.AmountSatoshis))
	}

	total, err := money.Sum(amounts...)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue for round %s: %w", roundID, err)
	}

	logger.InfoCtx(ctx, "Claimed accumulated revenue",
		logger.RoundID(roundID),
		zap.Stringer("revenue", total),
		zap.Int("records", len(records)),
		zap.Time("since", since))

	return total, nil
}

func (l *ledger) ReleaseClaim(ctx context.Context, roundID uuid.UUID) error {
	released, err := l.store.ReleaseRevenueClaim(ctx, roundID)
	if err != nil {
		return fmt.Errorf("failed to release revenue claim for round %s: %w", roundID, err)
	}

	logger.InfoCtx(ctx, "Released revenue claim", logger.RoundID(roundID), zap.Int64("records", released))
	return nil
}
