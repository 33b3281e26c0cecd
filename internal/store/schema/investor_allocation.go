package schema

import (
	"time"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// InvestorAllocation represents the investor_allocations table - investor funds held in escrow per tranche
type InvestorAllocation struct {
	ID           int64               `gorm:"column:id;primaryKey;autoIncrement"`
	TrancheID    int64               `gorm:"column:tranche_id;not null;index"`
	InvestorID   string              `gorm:"column:investor_id;not null"`
	Amount       int64               `gorm:"column:amount;not null"`
	EscrowStatus domain.EscrowStatus `gorm:"column:escrow_status;not null;default:pending"`
	ReleasedAt   *time.Time          `gorm:"column:released_at;type:timestamptz"`
	CreatedAt    time.Time           `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the InvestorAllocation model
func (InvestorAllocation) TableName() string {
	return "investor_allocations"
}
