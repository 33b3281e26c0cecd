package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DistributionRecord represents the distribution_records table - append-only audit of dividend rounds
type DistributionRecord struct {
	// ID is a monotonic sequence giving rounds a total order
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RoundID is the unique identifier of the round
	RoundID      uuid.UUID `gorm:"column:round_id;not null;uniqueIndex;type:uuid"`
	TotalRevenue int64     `gorm:"column:total_revenue;not null"`
	DividendPool int64     `gorm:"column:dividend_pool;not null"`
	TotalStaked  int64     `gorm:"column:total_staked;not null"`
	// RatePerUnitPPM is the pool paid per staked unit (pool / total_staked), in parts per million
	RatePerUnitPPM int64 `gorm:"column:rate_per_unit_ppm;not null"`
	// Remainder is the part of the pool left undistributed by floor division
	Remainder      int64 `gorm:"column:remainder;not null;default:0"`
	HoldersPaid    int   `gorm:"column:holders_paid;not null;default:0"`
	HoldersFailed  int   `gorm:"column:holders_failed;not null;default:0"`
	HoldersSkipped int   `gorm:"column:holders_skipped;not null;default:0"`
	// Manifest is the canonical JSON (RFC 8785) list of per-holder outcomes
	Manifest datatypes.JSON `gorm:"column:manifest;not null;type:jsonb"`
	// ManifestDigest is the hex SHA-256 of Manifest
	ManifestDigest string    `gorm:"column:manifest_digest;not null;type:varchar(64)"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DistributionRecord model
func (DistributionRecord) TableName() string {
	return "distribution_records"
}
