package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-revshare-engine/internal/money"
)

// RevenueStatus represents the lifecycle state of a revenue record
type RevenueStatus string

const (
	RevenueStatusPending     RevenueStatus = "pending"
	RevenueStatusDistributed RevenueStatus = "distributed"
)

// StakeStatus represents the state of a token stake
type StakeStatus string

const (
	StakeStatusPending   StakeStatus = "pending"
	StakeStatusConfirmed StakeStatus = "confirmed"
)

// IssueState represents the cached state of a tracked issue
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

// TrancheStatus represents the state of a funding tranche.
// Transitions are one-way: open -> completed.
type TrancheStatus string

const (
	TrancheStatusOpen      TrancheStatus = "open"
	TrancheStatusCompleted TrancheStatus = "completed"
)

// EscrowStatus represents the escrow state of an investor allocation.
// Transitions are one-way: pending -> released.
type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusReleased EscrowStatus = "released"
)

// RecipientType identifies who received an equity allocation
type RecipientType string

const (
	RecipientTypePlatform RecipientType = "platform"
)

// AllocationType identifies why an equity allocation was granted
type AllocationType string

const (
	AllocationTypeDevelopmentCompletion AllocationType = "development_completion"
)

// PayoutStatus is the per-holder outcome of a dividend round
type PayoutStatus string

const (
	PayoutStatusPaid    PayoutStatus = "paid"
	PayoutStatusFailed  PayoutStatus = "failed"
	PayoutStatusSkipped PayoutStatus = "skipped"
)

// SkipReason explains why a holder was not included in a payout batch
type SkipReason string

const (
	SkipReasonNoAddress      SkipReason = "no_withdrawal_address"
	SkipReasonInvalidAddress SkipReason = "invalid_withdrawal_address"
	SkipReasonBelowMinimum   SkipReason = "below_minimum"
)

// EquityCapPolicy decides what happens when a grant would push the platform above its cap
type EquityCapPolicy string

const (
	// EquityCapPolicyReject refuses the whole grant
	EquityCapPolicyReject EquityCapPolicy = "reject"
	// EquityCapPolicyClamp grants only the remaining headroom
	EquityCapPolicyClamp EquityCapPolicy = "clamp"
)

// IsValid checks if the policy is known
func (p EquityCapPolicy) IsValid() bool {
	return p == EquityCapPolicyReject || p == EquityCapPolicyClamp
}

// Ownership is one confirmed stake's share of the staked supply for a round
type Ownership struct {
	StakeID uuid.UUID
	UserID  string
	Amount  uint64
	Share   money.Share
}

// HolderPayout is the outcome of a round for one stake
type HolderPayout struct {
	StakeID    uuid.UUID      `json:"stakeId"`
	UserID     string         `json:"userId"`
	Amount     money.Satoshis `json:"amountSatoshis"`
	SharePPM   uint64         `json:"sharePpm"`
	Address    string         `json:"address,omitempty"`
	Status     PayoutStatus   `json:"status"`
	SkipReason SkipReason     `json:"skipReason,omitempty"`
}

// Unpaid reports whether the holder's amount should be carried into dividends owed
func (h HolderPayout) Unpaid() bool {
	return h.Amount > 0 && h.Status != PayoutStatusPaid
}

// DistributionSummary is what a dividend round reports back to its trigger
type DistributionSummary struct {
	RoundID         uuid.UUID      `json:"roundId"`
	Revenue         money.Satoshis `json:"revenue"`
	DividendPool    money.Satoshis `json:"dividendPool"`
	Remainder       money.Satoshis `json:"remainder"`
	HoldersReceived int            `json:"holdersReceived"`
	HoldersFailed   int            `json:"holdersFailed"`
	HoldersSkipped  int            `json:"holdersSkipped"`
	Skipped         bool           `json:"skipped"`
	Message         string         `json:"message"`
}

// IssueKey identifies an issue in the tracker
type IssueKey struct {
	RepoID      int64
	IssueNumber int
}

// TrancheRef is a lightweight view of a tranche linked to an issue
type TrancheRef struct {
	ID            int64
	ProjectSlug   string
	TrancheNumber int
	Name          string
	Status        TrancheStatus
}

// IssueWithTranches is the read projection of a cached issue and its linked tranches
type IssueWithTranches struct {
	IssueID     int64
	RepoID      int64
	IssueNumber int
	State       IssueState
	Tranches    []TrancheRef
}

// IssueStateChange is an upsert of a cached issue's state
type IssueStateChange struct {
	RepoID       int64
	RepoFullName string
	IssueNumber  int
	State        IssueState
	At           time.Time
}

// EquityOutcome is what an equity allocation attempt did
type EquityOutcome string

const (
	EquityOutcomeGranted        EquityOutcome = "granted"
	EquityOutcomeAlreadyGranted EquityOutcome = "already_granted"
	EquityOutcomeNotEligible    EquityOutcome = "not_eligible"
)

// EquityGrant is the result of an equity allocation attempt
type EquityGrant struct {
	Outcome      EquityOutcome `json:"outcome"`
	AllocationID int64         `json:"allocationId"`
	ProjectID    int64         `json:"projectId"`
	TrancheID    int64         `json:"trancheId"`
	RecipientID  string        `json:"recipientId"`
	Percent      money.Percent `json:"equityPercent"`
	OwnerShare   money.Percent `json:"ownerShare"`
	PlatformHeld money.Percent `json:"platformHeld"`
	Clamped      bool          `json:"clamped"`
}
