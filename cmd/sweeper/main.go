package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/config"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/providers/jetstream"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/sweeper"
	"github.com/feral-file/ff-revshare-engine/internal/tranche"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
		Service:         "ff-revshare-sweeper",
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := store.Open(ctx, cfg.Database.DSN(), cfg.Debug, cfg.Database.ConnectTimeout)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

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
	}
	defer publisher.Close()

	// Initialize tranche detector
	increment, err := cfg.Equity.IncrementPercent()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid equity configuration", zap.Error(err))
	}
	capPct, err := cfg.Equity.CapPercent()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid equity configuration", zap.Error(err))
	}
	equityConfig := tranche.EquityConfig{
		PlatformUserID: cfg.Equity.PlatformUserID,
		Increment:      increment,
		Cap:            capPct,
		Policy:         cfg.Equity.CapPolicy,
	}
	detector := tranche.NewDetector(
		dataStore,
		tranche.NewEscrowReleaser(dataStore, publisher, clock),
		tranche.NewEquityAllocator(equityConfig, dataStore, publisher, clock),
		publisher,
		clock,
	)

	// Initialize tranche sweeper
	trancheSweeper := sweeper.NewTrancheSweeper(sweeper.TrancheSweeperConfig{
		Interval:       cfg.TrancheSweeper.Interval,
		BatchSize:      cfg.TrancheSweeper.BatchSize,
		WorkerPoolSize: cfg.TrancheSweeper.Worker.WorkerPoolSize,
		EquityHeadroom: equityConfig.Headroom(),
	}, dataStore, detector, clock)

	logger.InfoCtx(ctx, "Initialized tranche sweeper",
		zap.Duration("interval", cfg.TrancheSweeper.Interval),
		zap.Int("batch_size", cfg.TrancheSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.TrancheSweeper.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := trancheSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give the sweeper time to finish the tranches in flight
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := trancheSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
