package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
	"github.com/feral-file/ff-revshare-engine/internal/tranche"
)

const (
	DEFAULT_TRANCHE_SWEEP_INTERVAL = 10 * time.Minute
	DEFAULT_TRANCHE_BATCH_SIZE     = 100
	DEFAULT_TRANCHE_WORKER_POOL    = 4
)

// TrancheSweeperConfig holds configuration for the tranche reconciliation sweeper
type TrancheSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	BatchSize      int           // Tranches listed per page
	WorkerPoolSize int           // Concurrent tranche evaluations
	// EquityHeadroom skips tranches whose only missing step is a grant the cap refuses
	EquityHeadroom store.EquityHeadroom
}

// SweepStats summarizes one reconciliation cycle
type SweepStats struct {
	Evaluated int32
	Completed int32
	Settled   int32
	Failed    int32
}

// TrancheSweeper reconciles tranches whose webhook-driven completion or settlement did not finish
type TrancheSweeper interface {
	Sweeper

	// Sweep runs a single reconciliation cycle over every page of candidates
	Sweep(ctx context.Context) (SweepStats, error)
}

// trancheSweeper implements the Sweeper interface for tranche reconciliation
type trancheSweeper struct {
	config    TrancheSweeperConfig
	store     store.TrancheStore
	detector  tranche.Detector
	clock     adapter.Clock
	running   atomic.Bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewTrancheSweeper creates a new tranche reconciliation sweeper
func NewTrancheSweeper(
	config TrancheSweeperConfig,
	st store.TrancheStore,
	detector tranche.Detector,
	clock adapter.Clock,
) TrancheSweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_TRANCHE_SWEEP_INTERVAL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_TRANCHE_BATCH_SIZE
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = DEFAULT_TRANCHE_WORKER_POOL
	}
	return &trancheSweeper{
		config:    config,
		store:     st,
		detector:  detector,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *trancheSweeper) Name() string {
	return "tranche-sweeper"
}

// Start runs sweep cycles until the context is canceled or Stop is called
func (s *trancheSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting tranche sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	for {
		if _, err := s.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.config.Interval) {
			logger.InfoCtx(ctx, "Tranche sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *trancheSweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping tranche sweeper")

	s.stopOnce.Do(func() { close(s.stopChan) })

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Tranche sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Tranche sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

func (s *trancheSweeper) Sweep(ctx context.Context) (SweepStats, error) {
	startTime := s.clock.Now()
	var evaluated, completed, settled, failed atomic.Int32

	// Open tranches whose issues all closed while a webhook was missed
	errReady := s.forEachPage(ctx, s.store.ListOpenTranchesReadyForCompletion, func(ref domain.TrancheRef) {
		evaluated.Add(1)
		ok, err := s.detector.TryComplete(ctx, ref)
		if err != nil {
			failed.Add(1)
			logger.ErrorCtx(ctx, fmt.Errorf("failed to reconcile open tranche: %w", err), logger.TrancheID(ref.ID))
		}
		if ok {
			completed.Add(1)
		}
	})

	// Completed tranches with pending escrow or a missing platform grant
	listPending := func(ctx context.Context, afterID int64, limit int) ([]schema.FundingTranche, error) {
		return s.store.ListCompletedTranchesPendingSettlement(ctx, s.config.EquityHeadroom, afterID, limit)
	}
	errPending := s.forEachPage(ctx, listPending, func(ref domain.TrancheRef) {
		evaluated.Add(1)
		if err := s.detector.Settle(ctx, ref); err != nil {
			failed.Add(1)
			logger.ErrorCtx(ctx, fmt.Errorf("failed to settle completed tranche: %w", err), logger.TrancheID(ref.ID))
			return
		}
		settled.Add(1)
	})

	stats := SweepStats{
		Evaluated: evaluated.Load(),
		Completed: completed.Load(),
		Settled:   settled.Load(),
		Failed:    failed.Load(),
	}

	logger.InfoCtx(ctx, "Tranche sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("evaluated", stats.Evaluated),
		zap.Int32("completed", stats.Completed),
		zap.Int32("settled", stats.Settled),
		zap.Int32("failed", stats.Failed),
	)

	return stats, errors.Join(errReady, errPending)
}

type listFunc func(ctx context.Context, afterID int64, limit int) ([]schema.FundingTranche, error)

// forEachPage pages through list by id and runs fn for every tranche on the worker pool.
// Each page is drained before the next one is listed.
func (s *trancheSweeper) forEachPage(ctx context.Context, list listFunc, fn func(ref domain.TrancheRef)) error {
	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := list(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to list tranches after %d: %w", afterID, err)
		}
		if len(page) == 0 {
			return nil
		}

		pool := pond.NewPool(
			s.config.WorkerPoolSize,
			pond.WithQueueSize(len(page)),
			pond.WithContext(ctx),
		)
		for _, t := range page {
			ref := toTrancheRef(t)
			pool.Submit(func() {
				fn(ref)
			})
		}
		pool.StopAndWait()

		afterID = page[len(page)-1].ID
		if len(page) < s.config.BatchSize {
			return nil
		}
	}
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *trancheSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

func toTrancheRef(t schema.FundingTranche) domain.TrancheRef {
	return domain.TrancheRef{
		ID:            t.ID,
		ProjectSlug:   t.ProjectSlug,
		TrancheNumber: t.TrancheNumber,
		Name:          t.Name,
		Status:        t.Status,
	}
}
