package workflows

import (
	"context"

	"github.com/feral-file/ff-revshare-engine/internal/dividend"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_dividend.go -package=mocks -mock_names=Executor=MockDividendExecutor
type Executor interface {
	// RunDividendRound claims revenue, pays holders and records one dividend round
	RunDividendRound(ctx context.Context) (*domain.DistributionSummary, error)
}

// executor is the concrete implementation of Executor
type executor struct {
	distributor dividend.Distributor
}

// NewExecutor creates a new executor instance
func NewExecutor(distributor dividend.Distributor) Executor {
	return &executor{distributor: distributor}
}

func (e *executor) RunDividendRound(ctx context.Context) (*domain.DistributionSummary, error) {
	return e.distributor.Distribute(ctx)
}
