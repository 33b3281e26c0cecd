package payout

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// Config holds payout executor configuration
type Config struct {
	// Timeout bounds the settlement call
	Timeout time.Duration
	// MinSatoshis is the smallest amount worth an output; smaller amounts are carried as owed
	MinSatoshis money.Satoshis
}

// Result is the outcome of a payout batch
type Result struct {
	Payouts      []domain.HolderPayout
	SuccessCount int
	FailureCount int
	SkippedCount int
}

// Executor pays a round's holders through the settlement service
//
//go:generate mockgen -source=executor.go -destination=../mocks/payout_executor.go -package=mocks -mock_names=Executor=MockPayoutExecutor
type Executor interface {
	// Execute resolves withdrawal addresses and submits one batch.
	// A failed or timed out submission is not an error: the holders are reported failed.
	// An error is returned only when nothing was submitted.
	Execute(ctx context.Context, roundID uuid.UUID, payouts []domain.HolderPayout) (*Result, error)
}

type executor struct {
	cfg       Config
	addresses store.WithdrawalAddressStore
	submitter Submitter
}

// NewExecutor creates a new payout executor
func NewExecutor(cfg Config, addresses store.WithdrawalAddressStore, submitter Submitter) Executor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DEFAULT_PAYOUT_TIMEOUT
	}
	return &executor{
		cfg:       cfg,
		addresses: addresses,
		submitter: submitter,
	}
}

func (e *executor) Execute(ctx context.Context, roundID uuid.UUID, payouts []domain.HolderPayout) (*Result, error) {
	result := &Result{Payouts: make([]domain.HolderPayout, len(payouts))}
	copy(result.Payouts, payouts)

	userIDs := make([]string, 0, len(payouts))
	seen := make(map[string]struct{}, len(payouts))
	for _, p := range payouts {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		userIDs = append(userIDs, p.UserID)
	}

	addresses, err := e.addresses.GetWithdrawalAddresses(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal addresses: %w", err)
	}

	// Resolve every holder to an output or a skip
	var outputs []Output
	var submitted []int
	for i := range result.Payouts {
		p := &result.Payouts[i]

		if p.Amount == 0 || p.Amount < e.cfg.MinSatoshis {
			e.skip(ctx, roundID, p, domain.SkipReasonBelowMinimum)
			continue
		}

		address, ok := addresses[p.UserID]
		if !ok || address == "" {
			e.skip(ctx, roundID, p, domain.SkipReasonNoAddress)
			continue
		}
		p.Address = address

		lockingScript, err := lockingScriptFor(address)
		if err != nil {
			logger.WarnCtx(ctx, "Invalid withdrawal address",
				logger.RoundID(roundID),
				logger.StakeID(p.StakeID),
				zap.String("userId", p.UserID),
				zap.Error(err))
			e.skip(ctx, roundID, p, domain.SkipReasonInvalidAddress)
			continue
		}

		outputs = append(outputs, Output{
			Address:        address,
			AmountSatoshis: p.Amount,
			LockingScript:  lockingScript,
		})
		submitted = append(submitted, i)
	}
	result.SkippedCount = len(result.Payouts) - len(submitted)

	if len(outputs) == 0 {
		logger.InfoCtx(ctx, "No valid withdrawal addresses, skipping payout batch", logger.RoundID(roundID))
		return result, nil
	}

	submitCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	results, err := e.submitter.SubmitBatch(submitCtx, outputs)
	if err != nil {
		if errors.Is(submitCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", domain.ErrPayoutTimeout, e.cfg.Timeout, err)
		}
		logger.ErrorCtx(ctx, fmt.Errorf("payout batch failed: %w", err),
			logger.RoundID(roundID),
			zap.Int("outputs", len(outputs)))

		for _, i := range submitted {
			result.Payouts[i].Status = domain.PayoutStatusFailed
		}
		result.FailureCount = len(submitted)
		return result, nil
	}

	if len(results) != len(outputs) {
		logger.WarnCtx(ctx, "Settlement service returned a different number of results",
			logger.RoundID(roundID),
			zap.Int("outputs", len(outputs)),
			zap.Int("results", len(results)))
	}

	for n, i := range submitted {
		p := &result.Payouts[i]
		if n < len(results) && results[n].Status == OutputStatusSuccess {
			p.Status = domain.PayoutStatusPaid
			result.SuccessCount++
			continue
		}

		p.Status = domain.PayoutStatusFailed
		result.FailureCount++

		var reason string
		if n < len(results) {
			reason = results[n].Error
		}
		logger.WarnCtx(ctx, "Payout output failed",
			logger.RoundID(roundID),
			logger.StakeID(p.StakeID),
			zap.String("userId", p.UserID),
			zap.Stringer("amount", p.Amount),
			zap.String("reason", reason))
	}

	logger.InfoCtx(ctx, "Payout batch settled",
		logger.RoundID(roundID),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.Int("skipped", result.SkippedCount))

	return result, nil
}

func (e *executor) skip(ctx context.Context, roundID uuid.UUID, p *domain.HolderPayout, reason domain.SkipReason) {
	p.Status = domain.PayoutStatusSkipped
	p.SkipReason = reason
	logger.InfoCtx(ctx, "Skipping holder payout",
		logger.RoundID(roundID),
		logger.StakeID(p.StakeID),
		zap.String("userId", p.UserID),
		zap.Stringer("amount", p.Amount),
		zap.String("reason", string(reason)))
}

// lockingScriptFor validates a BSV address and returns the hex P2PKH script paying it
func lockingScriptFor(address string) (string, error) {
	addr, err := script.NewAddressFromString(address)
	if err != nil {
		return "", fmt.Errorf("failed to parse address: %w", err)
	}
	if len(addr.PublicKeyHash) == 0 {
		return "", fmt.Errorf("address %q has an empty public key hash", address)
	}

	lockingScript, err := p2pkh.Lock(addr)
	if err != nil {
		return "", fmt.Errorf("failed to build locking script: %w", err)
	}

	return hex.EncodeToString(*lockingScript), nil
}
