package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// RecordWebhookDelivery stores an inbound delivery. A delivery id that was already recorded
// is left untouched and reported as a duplicate.
func (s *pgStore) RecordWebhookDelivery(ctx context.Context, delivery schema.GitHubWebhookDelivery) (bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "delivery_id"}},
		DoNothing: true,
	}).Create(&delivery)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record webhook delivery: %w", result.Error)
	}

	return result.RowsAffected == 0, nil
}
