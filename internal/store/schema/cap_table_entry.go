package schema

import (
	"time"

	"github.com/google/uuid"
)

// CapTableEntry represents the cap_table_entries table - each stake's ownership as of the last round
type CapTableEntry struct {
	StakeID uuid.UUID `gorm:"column:stake_id;primaryKey;type:uuid"`
	// PercentagePPM is the stake's share of the staked supply in parts per million
	PercentagePPM int64     `gorm:"column:percentage_ppm;not null"`
	RoundID       uuid.UUID `gorm:"column:round_id;not null;type:uuid"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CapTableEntry model
func (CapTableEntry) TableName() string {
	return "cap_table_entries"
}
