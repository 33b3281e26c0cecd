package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// RevenueRecord represents the revenue_records table - platform revenue awaiting distribution
type RevenueRecord struct {
	// ID is an auto-incrementing sequence number
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AmountSatoshis is the revenue amount in satoshis
	AmountSatoshis int64 `gorm:"column:amount_satoshis;not null"`
	// Status is pending until a dividend round claims the record
	Status domain.RevenueStatus `gorm:"column:status;not null;default:pending"`
	// Source describes where the revenue came from (e.g., "marketplace", "subscription")
	Source string `gorm:"column:source;not null;default:''"`
	// RoundID is the dividend round that claimed this record
	RoundID *uuid.UUID `gorm:"column:round_id;type:uuid"`
	// CreatedAt is when the revenue was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// DistributedAt is when the record was claimed
	DistributedAt *time.Time `gorm:"column:distributed_at;type:timestamptz"`
}

// TableName specifies the table name for the RevenueRecord model
func (RevenueRecord) TableName() string {
	return "revenue_records"
}
