package schema

import (
	"time"

	"github.com/feral-file/ff-revshare-engine/internal/money"
)

// ProjectMember represents the project_members table
type ProjectMember struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"column:project_id;not null;uniqueIndex:idx_project_members_project_user"`
	UserID    string `gorm:"column:user_id;not null;uniqueIndex:idx_project_members_project_user"`
	Role      string `gorm:"column:role;not null;default:''"`
	// EquityShare is kept between 0 and 100 percentage points
	EquityShare money.Percent `gorm:"column:equity_share;not null;type:numeric(9,6)"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ProjectMember model
func (ProjectMember) TableName() string {
	return "project_members"
}
