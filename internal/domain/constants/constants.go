// Package constants contains values shared across layers.
package constants

const (
	// PubSubProviderLocal posts events to a local HTTP endpoint in push format.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

// Ledger event types
const (
	EventTransactionCreated = "transaction.created"
	EventDeliveryDelivered  = "delivery.delivered"
)
