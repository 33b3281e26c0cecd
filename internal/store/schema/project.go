package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents the projects table. Rows are managed upstream.
type Project struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Slug        string `gorm:"column:slug;not null;uniqueIndex"`
	OwnerUserID string `gorm:"column:owner_user_id;not null;default:''"`
	// CreatedVia names the flow that created the project; "kintsugi-engine" enables equity grants
	CreatedVia string         `gorm:"column:created_via;not null;default:''"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
