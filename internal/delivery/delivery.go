// Package delivery holds the inbound adapters that drive the usecases.
package delivery

import "context"

// Delivery is a long-running inbound adapter, such as the HTTP API.
type Delivery interface {
	Serve(ctx context.Context) error
}
