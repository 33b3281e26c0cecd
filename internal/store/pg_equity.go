package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// GrantPlatformEquity records the platform's equity for a completed tranche.
//
// The project row is locked for the whole read-modify-write, so concurrent grants for the
// same project serialize on it. The unique (tranche_id, recipient_type) constraint makes a
// second grant for the same tranche a no-op.
func (s *pgStore) GrantPlatformEquity(ctx context.Context, input GrantPlatformEquityInput) (*domain.EquityGrant, error) {
	if input.Increment <= 0 {
		return nil, fmt.Errorf("equity increment must be positive, got %s", input.Increment)
	}

	var grant *domain.EquityGrant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the project
		var project schema.Project
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ?", input.ProjectSlug).
			First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, input.ProjectSlug)
			}
			return fmt.Errorf("failed to lock project: %w", err)
		}

		if project.CreatedVia != domain.KINTSUGI_CREATED_VIA {
			grant = &domain.EquityGrant{
				Outcome:   domain.EquityOutcomeNotEligible,
				ProjectID: project.ID,
				TrancheID: input.TrancheID,
			}
			return nil
		}

		// 2. An existing grant for this tranche means there is nothing to do
		var existing schema.EquityAllocation
		err = tx.Where("tranche_id = ? AND recipient_type = ?", input.TrancheID, domain.RecipientTypePlatform).
			First(&existing).Error
		if err == nil {
			grant = &domain.EquityGrant{
				Outcome:      domain.EquityOutcomeAlreadyGranted,
				AllocationID: existing.ID,
				ProjectID:    project.ID,
				TrancheID:    input.TrancheID,
				RecipientID:  existing.RecipientID,
				Percent:      existing.EquityPercent,
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing equity allocation: %w", err)
		}

		var tranche schema.FundingTranche
		if err := tx.Where("id = ?", input.TrancheID).First(&tranche).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTrancheNotFound
			}
			return fmt.Errorf("failed to get tranche: %w", err)
		}

		// 3. Apply the cap to the platform's cumulative holding
		var held money.Percent
		err = tx.Model(&schema.EquityAllocation{}).
			Select("COALESCE(SUM(equity_percent), 0)").
			Where("project_id = ? AND recipient_type = ?", project.ID, domain.RecipientTypePlatform).
			Row().Scan(&held)
		if err != nil {
			return fmt.Errorf("failed to sum platform equity: %w", err)
		}

		percent, clamped, err := applyEquityCap(held, input.Increment, input.Cap, input.Policy)
		if err != nil {
			return err
		}

		// 4. Insert the immutable allocation
		allocation := schema.EquityAllocation{
			ProjectID:      project.ID,
			RecipientID:    input.RecipientID,
			RecipientType:  domain.RecipientTypePlatform,
			EquityPercent:  percent,
			TrancheID:      input.TrancheID,
			AllocationType: domain.AllocationTypeDevelopmentCompletion,
			Notes: fmt.Sprintf("Earned %s%% equity for completing Tranche %d: %s",
				percent, tranche.TrancheNumber, tranche.Name),
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tranche_id"}, {Name: "recipient_type"}},
			DoNothing: true,
		}).Create(&allocation)
		if result.Error != nil {
			return fmt.Errorf("failed to create equity allocation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			grant = &domain.EquityGrant{
				Outcome:   domain.EquityOutcomeAlreadyGranted,
				ProjectID: project.ID,
				TrancheID: input.TrancheID,
			}
			return nil
		}

		now := time.Now().UTC()

		// 5. Decrement the owner's share, floored at zero
		var ownerShare money.Percent
		if project.OwnerUserID != "" {
			var owner schema.ProjectMember
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("project_id = ? AND user_id = ?", project.ID, project.OwnerUserID).
				First(&owner).Error
			switch {
			case err == nil:
				ownerShare = owner.EquityShare.SubFloor(percent)
				if err := tx.Model(&schema.ProjectMember{}).
					Where("id = ?", owner.ID).
					Updates(map[string]interface{}{
						"equity_share": ownerShare,
						"updated_at":   now,
					}).Error; err != nil {
					return fmt.Errorf("failed to update owner equity share: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Owner is not a member; nothing to decrement
			default:
				return fmt.Errorf("failed to lock owner member: %w", err)
			}
		}

		// 6. Credit the platform's member share
		member := schema.ProjectMember{
			ProjectID:   project.ID,
			UserID:      input.RecipientID,
			Role:        input.MemberRole,
			EquityShare: percent,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"equity_share": gorm.Expr("project_members.equity_share + EXCLUDED.equity_share"),
				"updated_at":   gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).Create(&member).Error; err != nil {
			return fmt.Errorf("failed to credit platform member share: %w", err)
		}

		grant = &domain.EquityGrant{
			Outcome:      domain.EquityOutcomeGranted,
			AllocationID: allocation.ID,
			ProjectID:    project.ID,
			TrancheID:    input.TrancheID,
			RecipientID:  input.RecipientID,
			Percent:      percent,
			OwnerShare:   ownerShare,
			PlatformHeld: held + percent,
			Clamped:      clamped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grant, nil
}

// applyEquityCap returns the percent to grant given what the platform already holds
func applyEquityCap(held, increment, limit money.Percent, policy domain.EquityCapPolicy) (money.Percent, bool, error) {
	if held+increment <= limit {
		return increment, false, nil
	}

	if policy == domain.EquityCapPolicyClamp {
		remaining := limit.SubFloor(held)
		if remaining > 0 {
			return remaining, true, nil
		}
	}

	return 0, false, fmt.Errorf("%w: platform holds %s%%, cap is %s%%, increment is %s%%",
		domain.ErrEquityCapExceeded, held, limit, increment)
}
