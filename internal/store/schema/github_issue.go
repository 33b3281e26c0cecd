package schema

import (
	"time"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// GitHubIssue represents the github_issues table - cached state of tracked issues
type GitHubIssue struct {
	ID           int64             `gorm:"column:id;primaryKey;autoIncrement"`
	RepoID       int64             `gorm:"column:repo_id;not null;uniqueIndex:idx_github_issues_repo_number"`
	RepoFullName string            `gorm:"column:repo_full_name;not null;default:''"`
	IssueNumber  int               `gorm:"column:issue_number;not null;uniqueIndex:idx_github_issues_repo_number"`
	State        domain.IssueState `gorm:"column:state;not null;default:open"`
	ClosedAt     *time.Time        `gorm:"column:closed_at;type:timestamptz"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GitHubIssue model
func (GitHubIssue) TableName() string {
	return "github_issues"
}
