package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// Stake represents the stakes table - tokens staked by a user
type Stake struct {
	ID     uuid.UUID          `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string             `gorm:"column:user_id;not null"`
	Amount int64              `gorm:"column:amount;not null"`
	Status domain.StakeStatus `gorm:"column:status;not null;default:pending"`
	// DividendsAccumulated is the lifetime total of dividends computed for this stake, paid or not
	DividendsAccumulated int64     `gorm:"column:dividends_accumulated;not null;default:0"`
	CreatedAt            time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Stake model
func (Stake) TableName() string {
	return "stakes"
}
