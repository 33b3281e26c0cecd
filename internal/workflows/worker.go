package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// WorkerCore defines the interface for the scheduled dividend workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// DistributeDividends runs one scheduled dividend round
	DistributeDividends(ctx workflow.Context) (*domain.DistributionSummary, error)
}

type WorkerCoreConfig struct {
	// RoundTimeout bounds a single round, payouts included
	RoundTimeout time.Duration
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.RoundTimeout <= 0 {
		config.RoundTimeout = 30 * time.Minute
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}
