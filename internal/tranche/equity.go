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
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// EquityConfig holds the platform equity policy
type EquityConfig struct {
	PlatformUserID string
	Increment      money.Percent
	Cap            money.Percent
	Policy         domain.EquityCapPolicy
	MemberRole     string
}

// Headroom returns the smallest grant the cap policy can still make
func (c EquityConfig) Headroom() store.EquityHeadroom {
	minGrant := c.Increment
	if c.Policy == domain.EquityCapPolicyClamp {
		minGrant = 1
	}
	return store.EquityHeadroom{Cap: c.Cap, MinGrant: minGrant}
}

// EquityAllocator grants the platform equity for a completed tranche of an eligible project
//
//go:generate mockgen -source=equity.go -destination=../mocks/equity.go -package=mocks -mock_names=EquityAllocator=MockEquityAllocator
type EquityAllocator interface {
	// Allocate records the platform grant for the tranche. Ineligible projects and
	// tranches already granted are no-ops reported through the outcome.
	Allocate(ctx context.Context, tranche domain.TrancheRef) (*domain.EquityGrant, error)
}

type equityAllocator struct {
	cfg       EquityConfig
	store     store.EquityStore
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewEquityAllocator creates a new equity allocator
func NewEquityAllocator(cfg EquityConfig, s store.EquityStore, publisher messaging.Publisher, clock adapter.Clock) EquityAllocator {
	if cfg.Policy == "" {
		cfg.Policy = domain.EquityCapPolicyReject
	}
	if cfg.MemberRole == "" {
		cfg.MemberRole = domain.PLATFORM_MEMBER_ROLE
	}
	return &equityAllocator{cfg: cfg, store: s, publisher: publisher, clock: clock}
}

func (a *equityAllocator) Allocate(ctx context.Context, tranche domain.TrancheRef) (*domain.EquityGrant, error) {
	grant, err := a.store.GrantPlatformEquity(ctx, store.GrantPlatformEquityInput{
		ProjectSlug: tranche.ProjectSlug,
		TrancheID:   tranche.ID,
		RecipientID: a.cfg.PlatformUserID,
		Increment:   a.cfg.Increment,
		Cap:         a.cfg.Cap,
		Policy:      a.cfg.Policy,
		MemberRole:  a.cfg.MemberRole,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEquityCapExceeded) {
			logger.WarnCtx(ctx, "Equity grant refused by cap",
				logger.TrancheID(tranche.ID),
				zap.String("project", tranche.ProjectSlug),
				zap.Error(err))
		}
		return nil, fmt.Errorf("failed to allocate equity for tranche %d: %w", tranche.ID, err)
	}

	switch grant.Outcome {
	case domain.EquityOutcomeNotEligible:
		logger.DebugCtx(ctx, "Project not eligible for platform equity",
			logger.TrancheID(tranche.ID),
			zap.String("project", tranche.ProjectSlug))
	case domain.EquityOutcomeAlreadyGranted:
		logger.InfoCtx(ctx, "Platform equity already granted for tranche",
			logger.TrancheID(tranche.ID),
			logger.AllocationID(grant.AllocationID))
	case domain.EquityOutcomeGranted:
		logger.InfoCtx(ctx, "Platform equity granted",
			logger.TrancheID(tranche.ID),
			logger.AllocationID(grant.AllocationID),
			zap.String("project", tranche.ProjectSlug),
			zap.Stringer("percent", grant.Percent),
			zap.Stringer("ownerShare", grant.OwnerShare),
			zap.Stringer("platformHeld", grant.PlatformHeld),
			zap.Bool("clamped", grant.Clamped))

		event := messaging.NewEvent(messaging.EventTypeEquityAllocated, strconv.FormatInt(tranche.ID, 10), a.clock.Now().UTC(), grant)
		if err := a.publisher.Publish(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish equity event", logger.TrancheID(tranche.ID), zap.Error(err))
		}
	}

	return grant, nil
}
