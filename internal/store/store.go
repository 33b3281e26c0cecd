package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// RevenueStore claims platform revenue for dividend rounds
type RevenueStore interface {
	// ClaimPendingRevenue atomically marks every pending record created at or after since
	// as distributed by roundID and returns the claimed rows
	ClaimPendingRevenue(ctx context.Context, roundID uuid.UUID, since time.Time, at time.Time) ([]schema.RevenueRecord, error)
	// ReleaseRevenueClaim returns the rows claimed by roundID to pending
	ReleaseRevenueClaim(ctx context.Context, roundID uuid.UUID) (int64, error)
}

// StakeStore reads the staked supply
type StakeStore interface {
	// GetConfirmedStakes returns every confirmed stake from a single snapshot, ordered by id
	GetConfirmedStakes(ctx context.Context) ([]schema.Stake, error)
}

// CapTableStore persists per-stake ownership
type CapTableStore interface {
	// UpsertCapTableEntry creates or replaces the cap table entry of a stake
	UpsertCapTableEntry(ctx context.Context, entry schema.CapTableEntry) error
}

// WithdrawalAddressStore looks up payout destinations
type WithdrawalAddressStore interface {
	// GetWithdrawalAddresses returns the withdrawal address of each user that has one
	GetWithdrawalAddresses(ctx context.Context, userIDs []string) (map[string]string, error)
}

// DistributionStore persists the outcome of dividend rounds
type DistributionStore interface {
	// RecordDistribution inserts the round record and applies its dividend bookkeeping in one transaction
	RecordDistribution(ctx context.Context, input RecordDistributionInput) (*schema.DistributionRecord, error)
	// GetDistributionByRoundID retrieves a round record, nil if missing
	GetDistributionByRoundID(ctx context.Context, roundID uuid.UUID) (*schema.DistributionRecord, error)
}

// IssueStore maintains the issue state cache
type IssueStore interface {
	// UpsertIssueState creates or updates the cached state of an issue
	UpsertIssueState(ctx context.Context, change domain.IssueStateChange) error
	// GetIssueWithTranches returns a cached issue and the tranches it is assigned to, nil if not cached
	GetIssueWithTranches(ctx context.Context, repoID int64, issueNumber int) (*domain.IssueWithTranches, error)
}

// TrancheStore drives tranche completion
type TrancheStore interface {
	// CompleteTrancheIfAllIssuesClosed moves an open tranche whose assigned issues are all closed to completed.
	// It returns true only for the caller that performed the transition.
	CompleteTrancheIfAllIssuesClosed(ctx context.Context, trancheID int64, at time.Time) (bool, error)
	// ListOpenTranchesReadyForCompletion lists open tranches with at least one issue and no open issue
	ListOpenTranchesReadyForCompletion(ctx context.Context, afterID int64, limit int) ([]schema.FundingTranche, error)
	// ListCompletedTranchesPendingSettlement lists completed tranches that still have pending escrow
	// or, for equity-eligible projects, no platform grant. Tranches missing only the grant are
	// skipped when their project has no headroom left under the cap.
	ListCompletedTranchesPendingSettlement(ctx context.Context, headroom EquityHeadroom, afterID int64, limit int) ([]schema.FundingTranche, error)
}

// EquityHeadroom describes the smallest grant the cap policy can still make.
// A project whose platform holding plus MinGrant exceeds Cap cannot be granted again.
// A zero Cap disables the check.
type EquityHeadroom struct {
	Cap      money.Percent
	MinGrant money.Percent
}

// EscrowStore releases investor allocations
type EscrowStore interface {
	// ReleasePendingAllocations moves every pending allocation of a tranche to released and returns their ids
	ReleasePendingAllocations(ctx context.Context, trancheID int64, at time.Time) ([]int64, error)
}

// EquityStore records platform equity grants
type EquityStore interface {
	// GrantPlatformEquity records the platform's equity for a completed tranche and rebalances member shares
	GrantPlatformEquity(ctx context.Context, input GrantPlatformEquityInput) (*domain.EquityGrant, error)
}

// WebhookDeliveryStore audits inbound webhook deliveries
type WebhookDeliveryStore interface {
	// RecordWebhookDelivery stores a delivery and reports whether its delivery id was seen before
	RecordWebhookDelivery(ctx context.Context, delivery schema.GitHubWebhookDelivery) (bool, error)
}

// Store defines the interface for database operations
type Store interface {
	RevenueStore
	StakeStore
	CapTableStore
	WithdrawalAddressStore
	DistributionStore
	IssueStore
	TrancheStore
	EscrowStore
	EquityStore
	WebhookDeliveryStore
	// Ping checks database connectivity
	Ping(ctx context.Context) error
}

// StakeCredit adds a round's computed dividend to a stake's lifetime total
type StakeCredit struct {
	StakeID uuid.UUID
	Amount  money.Satoshis
}

// OwedCredit adds an unpaid dividend to a user's running payable
type OwedCredit struct {
	UserID string
	Amount money.Satoshis
}

// RecordDistributionInput is everything written when a round completes
type RecordDistributionInput struct {
	Record  schema.DistributionRecord
	Credits []StakeCredit
	Owed    []OwedCredit
	At      time.Time
}

// GrantPlatformEquityInput describes one platform equity grant
type GrantPlatformEquityInput struct {
	ProjectSlug string
	TrancheID   int64
	RecipientID string
	Increment   money.Percent
	Cap         money.Percent
	Policy      domain.EquityCapPolicy
	// MemberRole is the role used when the platform becomes a project member
	MemberRole string
}
