// Package delivery defines the contract every transport entrypoint
// (HTTP server, future workers) implements so main can start them
// uniformly.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the
// server stops or fails; shutdown is driven through fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
