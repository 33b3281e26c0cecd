package tranche

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/github"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/store"
)

// IssueCache keeps the cached issue states current from webhook deliveries
//
//go:generate mockgen -source=issue_cache.go -destination=../mocks/issue_cache.go -package=mocks -mock_names=IssueCache=MockIssueCache
type IssueCache interface {
	// HandleIssueEvent applies closed and reopened transitions; other actions are ignored
	HandleIssueEvent(ctx context.Context, event github.IssuesEvent) error
	// HandlePullRequestEvent closes the issues a merged pull request links to and returns them
	HandlePullRequestEvent(ctx context.Context, event github.PullRequestEvent) ([]int, error)
}

type issueCache struct {
	store    store.IssueStore
	detector Detector
	clock    adapter.Clock
}

// NewIssueCache creates a new issue state cache
func NewIssueCache(s store.IssueStore, detector Detector, clock adapter.Clock) IssueCache {
	return &issueCache{store: s, detector: detector, clock: clock}
}

func (c *issueCache) HandleIssueEvent(ctx context.Context, event github.IssuesEvent) error {
	repo := event.Repository
	number := event.Issue.Number
	logger.InfoCtx(ctx, "Issue event",
		zap.String("action", event.Action),
		zap.String("repo", repo.FullName),
		zap.Int("issueNumber", number))

	switch event.Action {
	case github.ActionClosed:
		return c.close(ctx, repo, number, c.timestamp(event.Issue.ClosedAt))
	case github.ActionReopened:
		return c.store.UpsertIssueState(ctx, domain.IssueStateChange{
			RepoID:       repo.ID,
			RepoFullName: repo.FullName,
			IssueNumber:  number,
			State:        domain.IssueStateOpen,
			At:           c.timestamp(event.Issue.UpdatedAt),
		})
	default:
		return nil
	}
}

func (c *issueCache) HandlePullRequestEvent(ctx context.Context, event github.PullRequestEvent) ([]int, error) {
	repo := event.Repository
	logger.InfoCtx(ctx, "Pull request event",
		zap.String("action", event.Action),
		zap.String("repo", repo.FullName),
		zap.Int("number", event.PullRequest.Number),
		zap.Bool("merged", event.PullRequest.Merged))

	if !event.MergedClose() {
		return nil, nil
	}

	linked := github.ParseLinkedIssues(event.BodyText(), repo.FullName)
	if len(linked) == 0 {
		logger.InfoCtx(ctx, "Merged pull request links no issues",
			zap.String("repo", repo.FullName),
			zap.Int("number", event.PullRequest.Number))
		return nil, nil
	}

	logger.InfoCtx(ctx, "Merged pull request closes issues",
		zap.String("repo", repo.FullName),
		zap.Int("number", event.PullRequest.Number),
		zap.Ints("issues", linked))

	at := c.timestamp(event.PullRequest.MergedAt)
	var errs []error
	for _, number := range linked {
		if err := c.close(ctx, repo, number, at); err != nil {
			errs = append(errs, err)
		}
	}

	return linked, errors.Join(errs...)
}

func (c *issueCache) close(ctx context.Context, repo github.Repository, number int, at time.Time) error {
	err := c.store.UpsertIssueState(ctx, domain.IssueStateChange{
		RepoID:       repo.ID,
		RepoFullName: repo.FullName,
		IssueNumber:  number,
		State:        domain.IssueStateClosed,
		At:           at,
	})
	if err != nil {
		return err
	}

	completed, err := c.detector.OnIssueClosed(ctx, repo.ID, number)
	if len(completed) > 0 {
		logger.InfoCtx(ctx, "Issue closure completed tranches",
			zap.Int("issueNumber", number),
			zap.Int64s("tranches", completed))
	}
	return err
}

func (c *issueCache) timestamp(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return c.clock.Now().UTC()
	}
	return t.UTC()
}
