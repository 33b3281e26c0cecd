package messaging

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event types published after state transitions
const (
	EventTypeDividendsDistributed = "dividends.distributed"
	EventTypeTrancheCompleted     = "tranche.completed"
	EventTypeEscrowReleased       = "escrow.released"
	EventTypeEquityAllocated      = "equity.allocated"
)

// Event is an envelope for a domain event
type Event struct {
	// ID is a ULID assigned when the event is built
	ID string `json:"id"`
	// Type is one of the EventType constants and becomes the subject suffix
	Type string `json:"type"`
	// Key identifies the state transition; the same transition always has the same key,
	// so the broker drops redeliveries
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// NewEvent builds an event with a fresh ULID
func NewEvent(eventType, key string, at time.Time, data interface{}) Event {
	return Event{
		ID:         ulid.Make().String(),
		Type:       eventType,
		Key:        key,
		OccurredAt: at.UTC(),
		Data:       data,
	}
}

// DedupID is the broker-side deduplication id of the event
func (e Event) DedupID() string {
	return e.Type + ":" + e.Key
}

// Publisher defines the interface for publishing domain events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish publishes an event to the message broker
	Publish(ctx context.Context, event Event) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
// It is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() {}
