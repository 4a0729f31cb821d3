// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - InventoryGuard: validates availability and price over exclusively locked
//     products and consumes their stock
//   - StockCompensator: restores consumed stock when an order is cancelled,
//     under the same locking discipline
//
// Both services are pure: they operate on aggregates the caller has already
// loaded under row locks inside the enclosing transaction, and they never
// touch persistence themselves.
package services
