package dividend

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// Calculator computes each confirmed stake's share of the staked supply
type Calculator interface {
	// CalculateOwnership returns the ownership of every confirmed stake and the total staked.
	// Both are empty when nothing is staked.
	CalculateOwnership(ctx context.Context) ([]domain.Ownership, uint64, error)
}

type calculator struct {
	store store.StakeStore
}

// NewCalculator creates a new dividend calculator
func NewCalculator(s store.StakeStore) Calculator {
	return &calculator{store: s}
}

func (c *calculator) CalculateOwnership(ctx context.Context) ([]domain.Ownership, uint64, error) {
	stakes, err := c.store.GetConfirmedStakes(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get confirmed stakes: %w", err)
	}

	amounts := make([]money.Satoshis, 0, len(stakes))
	for _, s := range stakes {
		if s.Amount < 0 {
			return nil, 0, fmt.Errorf("stake %s has negative amount %d", s.ID, s.Amount)
		}
		amounts = append(amounts, money.Satoshis(s.Amount))
	}

	total, err := money.Sum(amounts...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum staked supply: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	entries := make([]domain.Ownership, 0, len(stakes))
	for _, s := range stakes {
		share, err := money.NewShare(uint64(s.Amount), uint64(total))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to compute share of stake %s: %w", s.ID, err)
		}
		entries = append(entries, domain.Ownership{
			StakeID: s.ID,
			UserID:  s.UserID,
			Amount:  uint64(s.Amount),
			Share:   share,
		})
	}

	return entries, uint64(total), nil
}

// DividendAmount returns floor(pool * share) for one holder
func DividendAmount(pool money.Satoshis, entry domain.Ownership) (money.Satoshis, error) {
	return entry.Share.Apply(pool)
}

// Allocate splits the pool across entries and returns each amount and the undistributed remainder.
// The remainder is smaller than the number of entries with a non-zero share.
func Allocate(pool money.Satoshis, entries []domain.Ownership) ([]money.Satoshis, money.Satoshis, error) {
	amounts := make([]money.Satoshis, len(entries))
	for i, e := range entries {
		amount, err := DividendAmount(pool, e)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to compute dividend of stake %s: %w", e.StakeID, err)
		}
		amounts[i] = amount
	}

	distributed, err := money.Sum(amounts...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum dividends: %w", err)
	}
	if distributed > pool {
		return nil, 0, fmt.Errorf("dividends %s exceed pool %s", distributed, pool)
	}

	return amounts, pool - distributed, nil
}
