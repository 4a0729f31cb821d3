package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their line items and invoices.
type OrderRepository interface {
	// Add persists a new order aggregate to storage, including its line
	// items and any attached invoices.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with line items and invoices.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate under an exclusive row lock.
	// Used by status transitions so that concurrent updates of the same
	// order serialize instead of racing.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingUnassigned retrieves orders still waiting for a shipper.
	// Used by the assignment retry sweep to find orders whose post-commit
	// notification never reached the assignment service.
	GetAllPendingUnassigned(ctx context.Context) ([]*order.Order, error)
}
