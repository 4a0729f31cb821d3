package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrProductInactive is the sentinel for attempts to order a deactivated product.
	ErrProductInactive = errors.New("product is not active")

	// ErrPriceChanged is the sentinel for catalog prices that drifted away from
	// the price the buyer saw. The caller must re-present an updated cart; the
	// order is never silently re-priced.
	ErrPriceChanged = errors.New("product price has changed")
)

// ProductInactiveError reports an order line referencing a deactivated product.
type ProductInactiveError struct {
	ProductID kernel.UUID
}

func (e *ProductInactiveError) Error() string {
	return fmt.Sprintf("%s: product %s", ErrProductInactive, e.ProductID)
}

func (e *ProductInactiveError) Unwrap() error {
	return ErrProductInactive
}

// PriceChangedError reports a drift between the expected and the locked
// catalog price for one product.
type PriceChangedError struct {
	ProductID kernel.UUID
	Expected  kernel.Money
	Actual    kernel.Money
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("%s: product %s is %s, buyer saw %s",
		ErrPriceChanged, e.ProductID, e.Actual, e.Expected)
}

func (e *PriceChangedError) Unwrap() error {
	return ErrPriceChanged
}

// PricePolicy selects how strictly expected prices are compared against the
// locked catalog price.
type PricePolicy int

const (
	// PriceExact requires the expected price to equal the catalog price.
	// Used for registered carts, whose prices were captured from the catalog.
	PriceExact PricePolicy = iota

	// PriceWithinEpsilon tolerates sub-cent rounding drift.
	// Used for guest payloads, whose declared prices passed through a client.
	PriceWithinEpsilon
)

// RequestedLine is one product requirement extracted from a cart or a guest
// payload: what to reserve and the price the buyer saw.
type RequestedLine struct {
	ProductID     kernel.UUID
	Quantity      int
	ExpectedPrice kernel.Money
}

// ProductIDsOf returns the distinct product IDs of the requested lines, in
// sorted order. Locking products in a deterministic order keeps two
// overlapping checkouts from deadlocking against each other.
func ProductIDsOf(lines []RequestedLine) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	kernel.SortUUIDs(ids)
	return ids
}

// InventoryGuard validates availability and price over products the caller
// has loaded under exclusive row locks, and consumes their stock.
//
// The guard mutates the passed product aggregates in memory; persisting the
// new stock levels inside the same transaction is the caller's job, so that
// the decrement commits or rolls back with the rest of the order.
type InventoryGuard struct{}

// NewInventoryGuard creates a new InventoryGuard instance.
func NewInventoryGuard() InventoryGuard {
	return InventoryGuard{}
}

// Reserve checks every requested line against the locked products and
// decrements stock for each.
//
// Failure modes, checked per line in order:
//   - product missing from the locked set: ObjectNotFoundError
//   - product inactive: *ProductInactiveError
//   - locked price differs from the expected price beyond what the policy
//     tolerates: *PriceChangedError
//   - requested quantity exceeds available stock: *product.InsufficientStockError
//
// Build-to-order SKUs pass stock validation and are exempt from the
// decrement. The first failure aborts the whole reservation; the caller must
// roll back the enclosing transaction, leaving all stock untouched.
func (g InventoryGuard) Reserve(
	products map[kernel.UUID]*product.Product,
	lines []RequestedLine,
	policy PricePolicy,
) error {
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			return errs.NewObjectNotFoundError("product", line.ProductID.String())
		}
		if err := p.Validate(); err != nil {
			return err
		}

		if !p.IsActive() {
			return &ProductInactiveError{ProductID: p.ID()}
		}

		if !g.priceAcceptable(p.Price(), line.ExpectedPrice, policy) {
			return &PriceChangedError{
				ProductID: p.ID(),
				Expected:  line.ExpectedPrice,
				Actual:    p.Price(),
			}
		}

		if err := p.Reserve(line.Quantity); err != nil {
			return err
		}
	}

	return nil
}

func (g InventoryGuard) priceAcceptable(actual, expected kernel.Money, policy PricePolicy) bool {
	if policy == PriceWithinEpsilon {
		return actual.WithinEpsilon(expected)
	}
	return actual.IsEqual(expected)
}
