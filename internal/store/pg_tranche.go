package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// UpsertIssueState creates or updates the cached state of an issue keyed by (repo_id, issue_number).
// Later writes win.
func (s *pgStore) UpsertIssueState(ctx context.Context, change domain.IssueStateChange) error {
	at := change.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	issue := schema.GitHubIssue{
		RepoID:       change.RepoID,
		RepoFullName: change.RepoFullName,
		IssueNumber:  change.IssueNumber,
		State:        change.State,
		UpdatedAt:    at,
	}
	if change.State == domain.IssueStateClosed {
		issue.ClosedAt = &at
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repo_id"}, {Name: "issue_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"repo_full_name", "state", "closed_at", "updated_at"}),
	}).Create(&issue).Error
	if err != nil {
		return fmt.Errorf("failed to upsert issue state: %w", err)
	}

	return nil
}

// GetIssueWithTranches returns a cached issue and its assigned tranches
func (s *pgStore) GetIssueWithTranches(ctx context.Context, repoID int64, issueNumber int) (*domain.IssueWithTranches, error) {
	var issue schema.GitHubIssue
	err := s.db.WithContext(ctx).
		Where("repo_id = ? AND issue_number = ?", repoID, issueNumber).
		First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	var tranches []schema.FundingTranche
	err = s.db.WithContext(ctx).
		Table("funding_tranches AS ft").
		Select("ft.*").
		Joins("JOIN tranche_assignments AS ta ON ta.tranche_id = ft.id").
		Where("ta.issue_id = ?", issue.ID).
		Order("ft.id ASC").
		Find(&tranches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tranches for issue: %w", err)
	}

	result := &domain.IssueWithTranches{
		IssueID:     issue.ID,
		RepoID:      issue.RepoID,
		IssueNumber: issue.IssueNumber,
		State:       issue.State,
		Tranches:    make([]domain.TrancheRef, 0, len(tranches)),
	}
	for _, t := range tranches {
		result.Tranches = append(result.Tranches, domain.TrancheRef{
			ID:            t.ID,
			ProjectSlug:   t.ProjectSlug,
			TrancheNumber: t.TrancheNumber,
			Name:          t.Name,
			Status:        t.Status,
		})
	}

	return result, nil
}

// CompleteTrancheIfAllIssuesClosed completes an open tranche once every assigned issue is closed.
// The tranche row is locked for the check and the transition is a compare-and-set on version,
// so exactly one caller observes true for a given tranche.
func (s *pgStore) CompleteTrancheIfAllIssuesClosed(ctx context.Context, trancheID int64, at time.Time) (bool, error) {
	var completed bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the tranche row
		var tranche schema.FundingTranche
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", trancheID).
			First(&tranche).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTrancheNotFound
			}
			return fmt.Errorf("failed to lock tranche: %w", err)
		}
		if tranche.Status != domain.TrancheStatusOpen {
			return nil
		}

		// 2. Count assigned issues and those not yet closed
		var total, notClosed int64
		err = tx.Table("tranche_assignments AS ta").
			Select("COUNT(*), COUNT(*) FILTER (WHERE gi.state <> ?)", domain.IssueStateClosed).
			Joins("JOIN github_issues AS gi ON gi.id = ta.issue_id").
			Where("ta.tranche_id = ?", trancheID).
			Row().Scan(&total, &notClosed)
		if err != nil {
			return fmt.Errorf("failed to count tranche issues: %w", err)
		}
		if total == 0 || notClosed > 0 {
			return nil
		}

		// 3. Compare-and-set the transition
		result := tx.Model(&schema.FundingTranche{}).
			Where("id = ? AND version = ? AND status = ?", trancheID, tranche.Version, domain.TrancheStatusOpen).
			Updates(map[string]interface{}{
				"status":       domain.TrancheStatusCompleted,
				"version":      gorm.Expr("version + 1"),
				"completed_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete tranche: %w", result.Error)
		}
		completed = result.RowsAffected == 1

		return nil
	})
	if err != nil {
		return false, err
	}

	return completed, nil
}

// ListOpenTranchesReadyForCompletion lists open tranches that have issues and none of them open
func (s *pgStore) ListOpenTranchesReadyForCompletion(ctx context.Context, afterID int64, limit int) ([]schema.FundingTranche, error) {
	var tranches []schema.FundingTranche
	err := s.db.WithContext(ctx).
		Table("funding_tranches AS ft").
		Select("ft.*").
		Where("ft.status = ? AND ft.id > ?", domain.TrancheStatusOpen, afterID).
		Where("EXISTS (SELECT 1 FROM tranche_assignments ta WHERE ta.tranche_id = ft.id)").
		Where(`NOT EXISTS (
			SELECT 1 FROM tranche_assignments ta
			JOIN github_issues gi ON gi.id = ta.issue_id
			WHERE ta.tranche_id = ft.id AND gi.state <> ?)`, domain.IssueStateClosed).
		Order("ft.id ASC").
		Limit(limit).
		Find(&tranches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open tranches ready for completion: %w", err)
	}

	return tranches, nil
}

// ListCompletedTranchesPendingSettlement lists completed tranches with escrow still pending
// or, for equity-eligible projects with headroom under the cap, without a platform grant
func (s *pgStore) ListCompletedTranchesPendingSettlement(ctx context.Context, headroom EquityHeadroom, afterID int64, limit int) ([]schema.FundingTranche, error) {
	var tranches []schema.FundingTranche
	err := s.db.WithContext(ctx).
		Table("funding_tranches AS ft").
		Select("ft.*").
		Where("ft.status = ? AND ft.id > ?", domain.TrancheStatusCompleted, afterID).
		Where(`(
			EXISTS (SELECT 1 FROM investor_allocations ia WHERE ia.tranche_id = ft.id AND ia.escrow_status = ?)
			OR EXISTS (
				SELECT 1 FROM projects p
				WHERE p.slug = ft.project_slug AND p.created_via = ?
				AND NOT EXISTS (SELECT 1 FROM equity_allocations ea WHERE ea.tranche_id = ft.id AND ea.recipient_type = ?)
				AND (
					?::numeric <= 0
					OR (SELECT COALESCE(SUM(held.equity_percent), 0) FROM equity_allocations held
						WHERE held.project_id = p.id AND held.recipient_type = ?) + ?::numeric <= ?::numeric
				)
			)
		)`,
			domain.EscrowStatusPending,
			domain.KINTSUGI_CREATED_VIA,
			domain.RecipientTypePlatform,
			headroom.Cap,
			domain.RecipientTypePlatform,
			headroom.MinGrant,
			headroom.Cap,
		).
		Order("ft.id ASC").
		Limit(limit).
		Find(&tranches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tranches pending settlement: %w", err)
	}

	return tranches, nil
}

// ReleasePendingAllocations releases every pending allocation of a tranche in one conditional update
func (s *pgStore) ReleasePendingAllocations(ctx context.Context, trancheID int64, at time.Time) ([]int64, error) {
	var released []schema.InvestorAllocation
	err := s.db.WithContext(ctx).
		Model(&released).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("tranche_id = ? AND escrow_status = ?", trancheID, domain.EscrowStatusPending).
		Updates(map[string]interface{}{
			"escrow_status": domain.EscrowStatusReleased,
			"released_at":   at,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to release pending allocations: %w", err)
	}

	ids := make([]int64, 0, len(released))
	for _, a := range released {
		ids = append(ids, a.ID)
	}

	return ids, nil
}
