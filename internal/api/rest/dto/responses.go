package dto

import "github.com/feral-file/ff-revshare-engine/internal/domain"

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DistributionResponse is the result of a triggered dividend round
type DistributionResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	Revenue         string `json:"revenue"`
	DividendPool    string `json:"dividendPool"`
	HoldersReceived int    `json:"holdersReceived"`
	HoldersFailed   int    `json:"holdersFailed"`
	HoldersSkipped  int    `json:"holdersSkipped"`
	RoundID         string `json:"roundId,omitempty"`
}

// NewDistributionResponse maps a round summary to its response
func NewDistributionResponse(summary *domain.DistributionSummary) DistributionResponse {
	resp := DistributionResponse{
		Status:          StatusSuccess,
		Message:         summary.Message,
		Revenue:         summary.Revenue.String(),
		DividendPool:    summary.DividendPool.String(),
		HoldersReceived: summary.HoldersReceived,
		HoldersFailed:   summary.HoldersFailed,
		HoldersSkipped:  summary.HoldersSkipped,
	}
	// Skipped rounds report no round id
	if !summary.Skipped {
		resp.RoundID = summary.RoundID.String()
	}
	return resp
}

// WebhookResponse acknowledges a webhook delivery
type WebhookResponse struct {
	Success bool   `json:"success"`
	Event   string `json:"event"`
	Action  string `json:"action,omitempty"`
	Merged  *bool  `json:"merged,omitempty"`
	Zen     string `json:"zen,omitempty"`
	Message string `json:"message,omitempty"`
}

// WebhookStatusResponse describes the webhook endpoint
type WebhookStatusResponse struct {
	Status      string   `json:"status"`
	Events      []string `json:"events"`
	Description string   `json:"description"`
	Docs        string   `json:"docs"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}
