package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/config"
	"github.com/feral-file/ff-revshare-engine/internal/dividend"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/payout"
	"github.com/feral-file/ff-revshare-engine/internal/providers/jetstream"
	temporal "github.com/feral-file/ff-revshare-engine/internal/providers/temporal"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ff-revshare-worker",
		Tags: map[string]string{
			"service": "worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting dividend worker")

	// Connect to database
	db, err := store.Open(ctx, cfg.Database.DSN(), cfg.Debug, cfg.Database.ConnectTimeout)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	clockAdapter := adapter.NewClock()

	// Initialize event publisher
	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			PublishTimeout: cfg.NATS.PublishTimeout,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, domain events will not be published")
	}
	defer publisher.Close()

	// Initialize dividend distributor
	rate, err := cfg.Dividend.DividendRate()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid dividend configuration", zap.Error(err))
	}
	submitter := payout.NewHTTPSubmitter(cfg.Payout.URL, cfg.Payout.APIKey, adapter.NewHTTPClient(cfg.Payout.Timeout), jsonAdapter)
	distributor := dividend.NewDistributor(
		dividend.Config{Rate: rate, Window: cfg.Dividend.Window},
		dividend.NewLedger(dataStore, clockAdapter),
		dividend.NewCalculator(dataStore),
		payout.NewExecutor(payout.Config{
			Timeout:     cfg.Payout.Timeout,
			MinSatoshis: money.Satoshis(cfg.Payout.MinSatoshis),
		}, dataStore, submitter),
		dividend.NewRecorder(dataStore, jsonAdapter, jcsAdapter),
		publisher,
		clockAdapter,
	)

	// Initialize executor for activities
	executor := workflows.NewExecutor(distributor)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.DividendTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.DividendTaskQueue))

	// Create worker core instance
	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		RoundTimeout: cfg.Payout.Timeout + 5*time.Minute,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.DistributeDividends)
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.RunDividendRound)
	logger.InfoCtx(ctx, "Registered activities")

	// Register the cron schedule; a running execution is reused
	if err := workflows.ScheduleDividendCron(ctx, temporalClient, workerCore, workflows.ScheduleConfig{
		TaskQueue:    cfg.Temporal.DividendTaskQueue,
		CronSchedule: cfg.Dividend.Schedule,
	}); err != nil {
		logger.FatalCtx(ctx, "Failed to schedule dividend workflow", zap.Error(err))
	}

	// Start worker
	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	logger.InfoCtx(ctx, "Shutting down worker...")
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
