package service

import (
	"context"
	"time"
)

// LedgerEvent is published after a ledger change is committed.
type LedgerEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	OwnerID       string    `json:"owner_id"`
	TransactionID string    `json:"transaction_id"`
	TotalAmount   float64   `json:"total_amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLedgerEvent publishes a ledger event for downstream consumers
	PublishLedgerEvent(ctx context.Context, event *LedgerEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
