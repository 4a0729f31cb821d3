// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, totals, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - LineItem: An immutable price-and-quantity snapshot taken at order time
//   - Invoice: The billing record created with the order in the same transaction
//
// Key business rules:
//   - Orders must have a valid unique identifier, shipping address, and at least one line item
//   - The order total always equals the sum of line item subtotals at creation time
//   - Order status follows the defined lifecycle starting at Pending; Delivered and
//     Cancelled are terminal
//   - Cancellation requires a reason of 10-200 characters
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
