package schema

import (
	"time"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
)

// EquityAllocation represents the equity_allocations table - immutable equity grants
type EquityAllocation struct {
	ID            int64                `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID     int64                `gorm:"column:project_id;not null;index"`
	RecipientID   string               `gorm:"column:recipient_id;not null"`
	RecipientType domain.RecipientType `gorm:"column:recipient_type;not null;uniqueIndex:idx_equity_allocations_tranche_recipient"`
	// EquityPercent is stored as NUMERIC(9,6) percentage points
	EquityPercent  money.Percent         `gorm:"column:equity_percent;not null;type:numeric(9,6)"`
	TrancheID      int64                 `gorm:"column:tranche_id;not null;uniqueIndex:idx_equity_allocations_tranche_recipient"`
	AllocationType domain.AllocationType `gorm:"column:allocation_type;not null"`
	Notes          string                `gorm:"column:notes;not null;default:''"`
	CreatedAt      time.Time             `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the EquityAllocation model
func (EquityAllocation) TableName() string {
	return "equity_allocations"
}
