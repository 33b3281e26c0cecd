package schema

import (
	"time"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// FundingTranche represents the funding_tranches table
type FundingTranche struct {
	ID            int64                `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectSlug   string               `gorm:"column:project_slug;not null"`
	TrancheNumber int                  `gorm:"column:tranche_number;not null"`
	Name          string               `gorm:"column:name;not null;default:''"`
	Status        domain.TrancheStatus `gorm:"column:status;not null;default:open"`
	// Version is bumped on every status transition and guards the open -> completed compare-and-set
	Version     int64      `gorm:"column:version;not null;default:0"`
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the FundingTranche model
func (FundingTranche) TableName() string {
	return "funding_tranches"
}
