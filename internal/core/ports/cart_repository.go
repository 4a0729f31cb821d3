package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// GetByCustomer retrieves the cart belonging to the given customer.
	// Every registered customer has exactly one cart; returns a not found
	// error when none exists.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Clear empties the cart's items and resets its cached total.
	// Called after a successful checkout inside the same transaction that
	// created the order.
	Clear(ctx context.Context, aggregate *cart.Cart) error
}
