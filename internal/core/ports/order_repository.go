package ports

import (
	"context"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and transit state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under
	// optimistic concurrency: the stored row must still carry the version
	// the aggregate was loaded with. On a version conflict an
	// errs.VersionIsInvalidError is returned and the caller should re-read
	// and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its route, timeline and both status
	// machines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders that have not reached a terminal
	// status. Used by the route repair sweep after topology changes.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
