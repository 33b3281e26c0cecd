package schema

// TrancheAssignment represents the tranche_assignments table - links issues to the tranches they gate
type TrancheAssignment struct {
	IssueID   int64 `gorm:"column:issue_id;primaryKey"`
	TrancheID int64 `gorm:"column:tranche_id;primaryKey"`
}

// TableName specifies the table name for the TrancheAssignment model
func (TrancheAssignment) TableName() string {
	return "tranche_assignments"
}
