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
	"github.com/feral-file/ff-revshare-engine/internal/api/rest"
	"github.com/feral-file/ff-revshare-engine/internal/api/server"
	"github.com/feral-file/ff-revshare-engine/internal/config"
	"github.com/feral-file/ff-revshare-engine/internal/dividend"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/payout"
	"github.com/feral-file/ff-revshare-engine/internal/providers/jetstream"
	"github.com/feral-file/ff-revshare-engine/internal/store"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ff-revshare-api",
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting revenue share API")

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

	// Dividend distribution
	rate, err := cfg.Dividend.DividendRate()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid dividend configuration", zap.Error(err))
	}
	submitter := payout.NewHTTPSubmitter(cfg.Payout.URL, cfg.Payout.APIKey, adapter.NewHTTPClient(cfg.Payout.Timeout), jsonAdapter)
	payoutExecutor := payout.NewExecutor(payout.Config{
		Timeout:     cfg.Payout.Timeout,
		MinSatoshis: money.Satoshis(cfg.Payout.MinSatoshis),
	}, dataStore, submitter)
	distributor := dividend.NewDistributor(
		dividend.Config{Rate: rate, Window: cfg.Dividend.Window},
		dividend.NewLedger(dataStore, clockAdapter),
		dividend.NewCalculator(dataStore),
		payoutExecutor,
		dividend.NewRecorder(dataStore, jsonAdapter, jcsAdapter),
		publisher,
		clockAdapter,
	)

	// Tranche gating
	equityConfig, err := newEquityConfig(cfg.Equity)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid equity configuration", zap.Error(err))
	}
	detector := tranche.NewDetector(
		dataStore,
		tranche.NewEscrowReleaser(dataStore, publisher, clockAdapter),
		tranche.NewEquityAllocator(equityConfig, dataStore, publisher, clockAdapter),
		publisher,
		clockAdapter,
	)
	issueCache := tranche.NewIssueCache(dataStore, detector, clockAdapter)

	if cfg.Auth.CronSecret == "" {
		logger.WarnCtx(ctx, "Cron secret not configured, the distribution endpoint will reject every request")
	}
	if cfg.Auth.WebhookSecret == "" {
		logger.WarnCtx(ctx, "Webhook secret not configured, every webhook delivery will be rejected")
	}

	handler := rest.NewHandler(rest.Config{WebhookSecret: cfg.Auth.WebhookSecret}, dataStore, distributor, issueCache, jsonAdapter, clockAdapter)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CronSecret:   cfg.Auth.CronSecret,
	}, handler)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("server forced to shutdown: %w", err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}

func newEquityConfig(cfg config.EquityConfig) (tranche.EquityConfig, error) {
	increment, err := cfg.IncrementPercent()
	if err != nil {
		return tranche.EquityConfig{}, err
	}
	capPct, err := cfg.CapPercent()
	if err != nil {
		return tranche.EquityConfig{}, err
	}
	return tranche.EquityConfig{
		PlatformUserID: cfg.PlatformUserID,
		Increment:      increment,
		Cap:            capPct,
		Policy:         cfg.CapPolicy,
	}, nil
}
