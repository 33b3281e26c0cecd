package schema

import "time"

// GitHubWebhookDelivery represents the github_webhook_deliveries table - audit log of inbound deliveries
type GitHubWebhookDelivery struct {
	// ID is a ULID assigned on receipt
	ID string `gorm:"column:id;primaryKey;type:varchar(26)"`
	// DeliveryID is the X-GitHub-Delivery header, unique per delivery and reused on redelivery
	DeliveryID   string    `gorm:"column:delivery_id;not null;uniqueIndex"`
	Event        string    `gorm:"column:event;not null;type:varchar(50)"`
	Action       string    `gorm:"column:action;not null;default:'';type:varchar(50)"`
	RepoFullName string    `gorm:"column:repo_full_name;not null;default:''"`
	ReceivedAt   time.Time `gorm:"column:received_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GitHubWebhookDelivery model
func (GitHubWebhookDelivery) TableName() string {
	return "github_webhook_deliveries"
}
