package schema

import "time"

// DividendsOwed represents the dividends_owed table - running total payable per user
type DividendsOwed struct {
	UserID           string    `gorm:"column:user_id;primaryKey"`
	DividendsPending int64     `gorm:"column:dividends_pending;not null;default:0"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DividendsOwed model
func (DividendsOwed) TableName() string {
	return "dividends_owed"
}
