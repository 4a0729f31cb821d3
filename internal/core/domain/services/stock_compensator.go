package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

// StockCompensator restores consumed stock when an order is cancelled.
//
// It mirrors the InventoryGuard's discipline exactly: the caller loads the
// line items' products under exclusive row locks inside the same transaction
// that writes the CANCELLED status, so a crash can never leave restoration
// and status write half-applied. Build-to-order SKUs are exempt from
// restoration just as they were from the decrement.
type StockCompensator struct{}

// NewStockCompensator creates a new StockCompensator instance.
func NewStockCompensator() StockCompensator {
	return StockCompensator{}
}

// ProductIDsOfItems returns the distinct product IDs referenced by the line
// items, sorted for deterministic lock acquisition.
func ProductIDsOfItems(items []order.LineItem) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(items))
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		ids = append(ids, item.ProductID())
	}
	kernel.SortUUIDs(ids)
	return ids
}

// Restore increments each product's stock by the order's original line item
// quantity. The products must have been loaded under exclusive locks by the
// caller; persisting the new levels inside the same transaction is the
// caller's job.
func (c StockCompensator) Restore(
	products map[kernel.UUID]*product.Product,
	items []order.LineItem,
) error {
	for _, item := range items {
		p, ok := products[item.ProductID()]
		if !ok {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if err := p.Validate(); err != nil {
			return err
		}

		if err := p.Release(item.Quantity()); err != nil {
			return err
		}
	}

	return nil
}
