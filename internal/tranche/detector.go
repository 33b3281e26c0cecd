package tranche

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// DetectorStore is the persistence a Detector reads and transitions
type DetectorStore interface {
	store.IssueStore
	store.TrancheStore
}

// Detector completes tranches once all of their issues are closed
//
//go:generate mockgen -source=detector.go -destination=../mocks/detector.go -package=mocks -mock_names=Detector=MockDetector
type Detector interface {
	// OnIssueClosed evaluates every open tranche the issue is assigned to and returns
	// the ids of the tranches this call completed
	OnIssueClosed(ctx context.Context, repoID int64, issueNumber int) ([]int64, error)
	// TryComplete completes the tranche if all its issues are closed and settles it when this call won the transition
	TryComplete(ctx context.Context, tranche domain.TrancheRef) (bool, error)
	// Settle releases escrow and allocates equity for a completed tranche
	Settle(ctx context.Context, tranche domain.TrancheRef) error
}

type detector struct {
	store     DetectorStore
	escrow    EscrowReleaser
	equity    EquityAllocator
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewDetector creates a new tranche completion detector
func NewDetector(
	s DetectorStore,
	escrow EscrowReleaser,
	equity EquityAllocator,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Detector {
	return &detector{
		store:     s,
		escrow:    escrow,
		equity:    equity,
		publisher: publisher,
		clock:     clock,
	}
}

func (d *detector) OnIssueClosed(ctx context.Context, repoID int64, issueNumber int) ([]int64, error) {
	issue, err := d.store.GetIssueWithTranches(ctx, repoID, issueNumber)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		logger.WarnCtx(ctx, "Closed issue is not cached",
			zap.Int64("repoId", repoID),
			zap.Int("issueNumber", issueNumber))
		return nil, nil
	}
	if len(issue.Tranches) == 0 {
		logger.DebugCtx(ctx, "Issue not assigned to any tranche",
			zap.Int64("repoId", repoID),
			zap.Int("issueNumber", issueNumber))
		return nil, nil
	}

	var completed []int64
	var errs []error
	for _, t := range issue.Tranches {
		if t.Status != domain.TrancheStatusOpen {
			continue
		}

		ok, err := d.TryComplete(ctx, t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			completed = append(completed, t.ID)
		}
	}

	return completed, errors.Join(errs...)
}

func (d *detector) TryComplete(ctx context.Context, tranche domain.TrancheRef) (bool, error) {
	at := d.clock.Now().UTC()
	completed, err := d.store.CompleteTrancheIfAllIssuesClosed(ctx, tranche.ID, at)
	if err != nil {
		if errors.Is(err, domain.ErrTrancheNotFound) {
			logger.WarnCtx(ctx, "Tranche disappeared before completion", logger.TrancheID(tranche.ID))
			return false, nil
		}
		return false, fmt.Errorf("failed to complete tranche %d: %w", tranche.ID, err)
	}
	if !completed {
		logger.DebugCtx(ctx, "Tranche not ready for completion", logger.TrancheID(tranche.ID))
		return false, nil
	}

	logger.InfoCtx(ctx, "Tranche completed",
		logger.TrancheID(tranche.ID),
		zap.String("project", tranche.ProjectSlug),
		zap.String("name", tranche.Name))

	tranche.Status = domain.TrancheStatusCompleted
	event := messaging.NewEvent(messaging.EventTypeTrancheCompleted, strconv.FormatInt(tranche.ID, 10), at, tranche)
	if err := d.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish tranche event", logger.TrancheID(tranche.ID), zap.Error(err))
	}

	// The transition is committed; settlement failures are picked up by the sweeper
	if err := d.Settle(ctx, tranche); err != nil {
		return true, err
	}

	return true, nil
}

func (d *detector) Settle(ctx context.Context, tranche domain.TrancheRef) error {
	var errs []error

	if _, err := d.escrow.Release(ctx, tranche.ID); err != nil {
		logger.ErrorCtx(ctx, err, logger.TrancheID(tranche.ID))
		errs = append(errs, err)
	}

	if _, err := d.equity.Allocate(ctx, tranche); err != nil {
		switch {
		case errors.Is(err, domain.ErrEquityCapExceeded), errors.Is(err, domain.ErrProjectNotFound):
			// Not retryable
			logger.WarnCtx(ctx, "Equity not allocated", logger.TrancheID(tranche.ID), zap.Error(err))
		default:
			logger.ErrorCtx(ctx, err, logger.TrancheID(tranche.ID))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
