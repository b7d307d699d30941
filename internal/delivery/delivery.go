// Package delivery holds the inbound adapters: the HTTP API and the background worker.
package delivery

import "context"

// Delivery is a long-running server started by the fx application.
type Delivery interface {
	Serve(ctx context.Context) error
}
