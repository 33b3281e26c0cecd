package schema

import "time"

// WithdrawalAddress represents the withdrawal_addresses table
type WithdrawalAddress struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Address   string    `gorm:"column:address;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WithdrawalAddress model
func (WithdrawalAddress) TableName() string {
	return "withdrawal_addresses"
}
