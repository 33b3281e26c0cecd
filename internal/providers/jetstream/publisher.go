package jetstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// PublishTimeout bounds the total time spent publishing one event, retries included
	PublishTimeout time.Duration
}

type publisher struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	json    adapter.JSON
	cfg     Config
	backoff func() backoff.BackOff
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(fmt.Errorf("disconnected from NATS: %w", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}

	// The stream is provisioned outside the engine; fail fast when it is missing
	if cfg.StreamName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.PublishTimeout)
		defer cancel()
		if _, err := js.Stream(ctx, cfg.StreamName); err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to look up stream %s: %w", cfg.StreamName, err)
		}
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
		cfg:  cfg,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = time.Second
			b.MaxElapsedTime = cfg.PublishTimeout
			return b
		},
	}, nil
}

// Publish publishes an event to NATS JetStream. The event's dedup id is sent as Nats-Msg-Id,
// so a retried or redelivered publish of the same transition is stored once.
func (p *publisher) Publish(ctx context.Context, event messaging.Event) error {
	logger.DebugCtx(ctx, "Publishing NATS event",
		zap.String("type", event.Type),
		zap.String("key", event.Key))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.buildSubject(event)
	opts := []natsjs.PublishOpt{natsjs.WithMsgID(event.DedupID())}
	if p.cfg.StreamName != "" {
		opts = append(opts, natsjs.WithExpectStream(p.cfg.StreamName))
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	operation := func() error {
		_, err := p.js.Publish(ctx, subject, data, opts...)
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Error(err),
			zap.String("subject", subject),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(p.backoff(), ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	return nil
}

// buildSubject constructs the NATS subject, e.g. revshare.tranche.completed
func (p *publisher) buildSubject(event messaging.Event) string {
	prefix := strings.TrimSuffix(p.cfg.SubjectPrefix, ".")
	if prefix == "" {
		return event.Type
	}
	return prefix + "." + event.Type
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
