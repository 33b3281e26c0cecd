package tranche

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// EscrowReleaser releases the escrowed investor allocations of a completed tranche
//
//go:generate mockgen -source=escrow.go -destination=../mocks/escrow.go -package=mocks -mock_names=EscrowReleaser=MockEscrowReleaser
type EscrowReleaser interface {
	// Release moves every pending allocation of the tranche to released and returns their ids.
	// Calling it again releases nothing new.
	Release(ctx context.Context, trancheID int64) ([]int64, error)
}

type escrowReleasedData struct {
	TrancheID     int64   `json:"trancheId"`
	AllocationIDs []int64 `json:"allocationIds"`
}

type escrowReleaser struct {
	store     store.EscrowStore
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewEscrowReleaser creates a new escrow releaser
func NewEscrowReleaser(s store.EscrowStore, publisher messaging.Publisher, clock adapter.Clock) EscrowReleaser {
	return &escrowReleaser{store: s, publisher: publisher, clock: clock}
}

func (r *escrowReleaser) Release(ctx context.Context, trancheID int64) ([]int64, error) {
	at := r.clock.Now().UTC()
	ids, err := r.store.ReleasePendingAllocations(ctx, trancheID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to release escrow for tranche %d: %w", trancheID, err)
	}

	if len(ids) == 0 {
		logger.DebugCtx(ctx, "No pending allocations to release", logger.TrancheID(trancheID))
		return ids, nil
	}

	for _, id := range ids {
		logger.InfoCtx(ctx, "Released investor allocation", logger.TrancheID(trancheID), logger.AllocationID(id))
	}
	logger.InfoCtx(ctx, "Escrow released", logger.TrancheID(trancheID), zap.Int("allocations", len(ids)))

	// Released ids never repeat, so the first one keys this release
	key := fmt.Sprintf("%d:%d", trancheID, ids[0])
	event := messaging.NewEvent(messaging.EventTypeEscrowReleased, key, at, escrowReleasedData{
		TrancheID:     trancheID,
		AllocationIDs: ids,
	})
	if err := r.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish escrow event", logger.TrancheID(trancheID), zap.Error(err))
	}

	return ids, nil
}
