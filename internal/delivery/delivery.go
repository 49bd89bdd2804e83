// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a running transport surface, e.g. an HTTP server.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
