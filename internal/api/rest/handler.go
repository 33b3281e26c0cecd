package rest

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/api/rest/dto"
	"github.com/feral-file/ff-revshare-engine/internal/dividend"
	"github.com/feral-file/ff-revshare-engine/internal/github"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
	"github.com/feral-file/ff-revshare-engine/internal/tranche"
)

// GitHub caps webhook payloads at 25 MB
const maxWebhookBodyBytes = 25 << 20

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// DistributeDividends runs one dividend round
	// GET /api/v1/cron/distribute-dividends
	DistributeDividends(c *gin.Context)

	// ReceiveGitHubWebhook verifies and applies an issues, pull_request or ping delivery
	// POST /api/v1/github/webhooks
	ReceiveGitHubWebhook(c *gin.Context)

	// GetGitHubWebhookStatus describes the webhook endpoint
	// GET /api/v1/github/webhooks
	GetGitHubWebhookStatus(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// Config holds handler configuration
type Config struct {
	WebhookSecret string
}

// handler implements the Handler interface
type handler struct {
	cfg         Config
	store       store.Store
	distributor dividend.Distributor
	issues      tranche.IssueCache
	json        adapter.JSON
	clock       adapter.Clock
}

// NewHandler creates a new REST API handler
func NewHandler(
	cfg Config,
	s store.Store,
	distributor dividend.Distributor,
	issues tranche.IssueCache,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
) Handler {
	return &handler{
		cfg:         cfg,
		store:       s,
		distributor: distributor,
		issues:      issues,
		json:        jsonAdapter,
		clock:       clock,
	}
}

// DistributeDividends runs a dividend round and reports its outcome
func (h *handler) DistributeDividends(c *gin.Context) {
	ctx := c.Request.Context()
	logger.InfoCtx(ctx, "Starting dividend distribution job")

	summary, err := h.distributor.Distribute(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.DistributionResponse{
			Status:  dto.StatusError,
			Message: "Dividend distribution failed",
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewDistributionResponse(summary))
}

// envelope holds the fields shared by every delivery
type envelope struct {
	Action     string            `json:"action"`
	Repository github.Repository `json:"repository"`
}

// ReceiveGitHubWebhook verifies the delivery signature and dispatches on X-GitHub-Event
func (h *handler) ReceiveGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	deliveryID := c.GetHeader(github.HeaderDelivery)
	eventName := c.GetHeader(github.HeaderEvent)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		respondBadRequest(c, "Failed to read request body", err.Error())
		return
	}

	if err := github.VerifySignature(h.cfg.WebhookSecret, body, c.GetHeader(github.HeaderSignature)); err != nil {
		logger.WarnCtx(ctx, "Rejected webhook delivery",
			logger.DeliveryID(deliveryID),
			zap.String("event", eventName),
			zap.Error(err))
		respondUnauthorized(c, "Invalid signature")
		return
	}

	var env envelope
	if err := h.json.Unmarshal(body, &env); err != nil {
		respondBadRequest(c, "Malformed payload", err.Error())
		return
	}

	h.recordDelivery(c, deliveryID, eventName, env)

	switch github.ClassifyEvent(eventName) {
	case github.EventKindIssue:
		var event github.IssuesEvent
		if err := h.json.Unmarshal(body, &event); err != nil {
			respondBadRequest(c, "Malformed issues payload", err.Error())
			return
		}
		if err := h.issues.HandleIssueEvent(ctx, event); err != nil {
			respondInternalError(c, err, "Failed to process issues event", logger.DeliveryID(deliveryID))
			return
		}
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: true, Event: eventName, Action: event.Action})

	case github.EventKindPullRequest:
		var event github.PullRequestEvent
		if err := h.json.Unmarshal(body, &event); err != nil {
			respondBadRequest(c, "Malformed pull_request payload", err.Error())
			return
		}
		if _, err := h.issues.HandlePullRequestEvent(ctx, event); err != nil {
			respondInternalError(c, err, "Failed to process pull_request event", logger.DeliveryID(deliveryID))
			return
		}
		merged := event.PullRequest.Merged
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: true, Event: eventName, Action: event.Action, Merged: &merged})

	case github.EventKindPing:
		var event github.PingEvent
		if err := h.json.Unmarshal(body, &event); err != nil {
			respondBadRequest(c, "Malformed ping payload", err.Error())
			return
		}
		logger.InfoCtx(ctx, "Received ping event", zap.Int64("hookId", event.HookID))
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: true, Event: eventName, Zen: event.Zen})

	default:
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: true, Event: eventName, Message: "Event ignored"})
	}
}

// recordDelivery audits the delivery. Failures are logged; redeliveries are processed again.
func (h *handler) recordDelivery(c *gin.Context, deliveryID, eventName string, env envelope) {
	ctx := c.Request.Context()
	if deliveryID == "" {
		logger.WarnCtx(ctx, "Webhook delivery without delivery id", zap.String("event", eventName))
		return
	}

	now := h.clock.Now().UTC()
	dup, err := h.store.RecordWebhookDelivery(ctx, schema.GitHubWebhookDelivery{
		ID:           ulid.MustNewDefault(now).String(),
		DeliveryID:   deliveryID,
		Event:        eventName,
		Action:       env.Action,
		RepoFullName: env.Repository.FullName,
		ReceivedAt:   now,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to record webhook delivery", logger.DeliveryID(deliveryID), zap.Error(err))
		return
	}
	if dup {
		logger.InfoCtx(ctx, "Webhook redelivery", logger.DeliveryID(deliveryID), zap.String("event", eventName))
	}
}

// GetGitHubWebhookStatus describes the webhook endpoint
func (h *handler) GetGitHubWebhookStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.WebhookStatusResponse{
		Status:      "active",
		Events:      github.HandledEvents,
		Description: "GitHub webhook for issue closures and PR merges driving tranche escrow release",
		Docs:        "Configure this URL in your GitHub repository webhook settings",
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logger.ErrorCtx(c.Request.Context(), fmt.Errorf("health check failed: %w", err))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unavailable",
			Service:  "ff-revshare-api",
			Database: "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Service:  "ff-revshare-api",
		Database: "ok",
	})
}
