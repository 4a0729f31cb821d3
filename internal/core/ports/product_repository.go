// Package ports defines repository and gateway interfaces for the
// fulfillment domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves the given products under exclusive row locks.
	// The IDs must be pre-sorted by the caller; acquiring locks in a
	// deterministic order keeps overlapping checkouts from deadlocking.
	// Products missing from storage are simply absent from the result map.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)

	// Update persists changes to an existing product aggregate.
	// Typically called with products previously loaded via GetForUpdate,
	// inside the same transaction.
	Update(ctx context.Context, aggregate *product.Product) error
}
