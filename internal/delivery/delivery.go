// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a servable transport (HTTP today). Serve blocks until the
// listener stops; shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
