package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// ClaimPendingRevenue atomically marks pending revenue as distributed by a round.
// Select and mark happen in one UPDATE ... RETURNING, so concurrent rounds claim disjoint rows.
func (s *pgStore) ClaimPendingRevenue(ctx context.Context, roundID uuid.UUID, since time.Time, at time.Time) ([]schema.RevenueRecord, error) {
	var claimed []schema.RevenueRecord
	err := s.db.WithContext(ctx).
		Model(&claimed).
		Clauses(clause.Returning{}).
		Where("status = ? AND created_at >= ?", domain.RevenueStatusPending, since).
		Updates(map[string]interface{}{
			"status":         domain.RevenueStatusDistributed,
			"round_id":       roundID,
			"distributed_at": at,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending revenue: %w", err)
	}

	return claimed, nil
}

// ReleaseRevenueClaim returns the rows claimed by a round to pending
func (s *pgStore) ReleaseRevenueClaim(ctx context.Context, roundID uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.RevenueRecord{}).
		Where("round_id = ? AND status = ?", roundID, domain.RevenueStatusDistributed).
		Updates(map[string]interface{}{
			"status":         domain.RevenueStatusPending,
			"round_id":       nil,
			"distributed_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to release revenue claim: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// GetConfirmedStakes returns every confirmed stake from one repeatable-read snapshot
func (s *pgStore) GetConfirmedStakes(ctx context.Context) ([]schema.Stake, error) {
	var stakes []schema.Stake
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("status = ?", domain.StakeStatusConfirmed).
			Order("id ASC").
			Find(&stakes).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmed stakes: %w", err)
	}

	return stakes, nil
}

// UpsertCapTableEntry creates or replaces the cap table entry of a stake
func (s *pgStore) UpsertCapTableEntry(ctx context.Context, entry schema.CapTableEntry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stake_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentage_ppm", "round_id", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cap table entry: %w", err)
	}

	return nil
}

// GetWithdrawalAddresses returns the withdrawal address of each user that has one
func (s *pgStore) GetWithdrawalAddresses(ctx context.Context, userIDs []string) (map[string]string, error) {
	addresses := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return addresses, nil
	}

	var rows []schema.WithdrawalAddress
	err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal addresses: %w", err)
	}

	for _, row := range rows {
		addresses[row.UserID] = row.Address
	}

	return addresses, nil
}

// RecordDistribution inserts the immutable round record, credits each stake's lifetime dividends
// and adds unpaid amounts to dividends owed, all in a single transaction
func (s *pgStore) RecordDistribution(ctx context.Context, input RecordDistributionInput) (*schema.DistributionRecord, error) {
	at := input.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	record := input.Record
	record.CreatedAt = at

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Insert the round record; a duplicate round id fails the whole transaction
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create distribution record: %w", err)
		}

		// 2. Credit stakes
		for _, credit := range input.Credits {
			if credit.Amount == 0 {
				continue
			}
			amount, err := toColumn(credit.Amount)
			if err != nil {
				return err
			}
			result := tx.Model(&schema.Stake{}).
				Where("id = ?", credit.StakeID).
				Updates(map[string]interface{}{
					"dividends_accumulated": gorm.Expr("dividends_accumulated + ?", amount),
					"updated_at":            at,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to credit stake %s: %w", credit.StakeID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("failed to credit stake %s: stake not found", credit.StakeID)
			}
		}

		// 3. Accumulate unpaid dividends per user
		for _, owed := range input.Owed {
			if owed.Amount == 0 {
				continue
			}
			amount, err := toColumn(owed.Amount)
			if err != nil {
				return err
			}
			row := schema.DividendsOwed{
				UserID:           owed.UserID,
				DividendsPending: amount,
				UpdatedAt:        at,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"dividends_pending": gorm.Expr("dividends_owed.dividends_pending + EXCLUDED.dividends_pending"),
					"updated_at":        gorm.Expr("EXCLUDED.updated_at"),
				}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to update dividends owed for user %s: %w", owed.UserID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetDistributionByRoundID retrieves a round record by its round id
func (s *pgStore) GetDistributionByRoundID(ctx context.Context, roundID uuid.UUID) (*schema.DistributionRecord, error) {
	var record schema.DistributionRecord
	err := s.db.WithContext(ctx).Where("round_id = ?", roundID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get distribution record: %w", err)
	}

	return &record, nil
}
