// Package product provides the product entity as consumed by the order
// fulfillment core: live price, stock level and availability flags. Product
// catalog management (creation, pricing, activation) lives elsewhere; this
// core only decrements stock at checkout and restores it on cancellation.
package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is the sentinel for stock reservations that exceed
	// the available quantity. Use errors.As with *InsufficientStockError for details.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports an attempted reservation beyond available stock.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s has %d, requested %d",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the inventory-bearing entity guarded by this core.
//
// Invariants enforced here:
//   - Stock quantity never goes negative
//   - Build-to-order products never have stock decremented (or restored):
//     their stock counter is informational only
//
// A Product must be loaded under an exclusive row lock before its stock is
// mutated; the aggregate itself only enforces arithmetic invariants.
type Product struct {
	id     kernel.UUID
	name   string
	price  kernel.Money
	stock  int
	active bool

	// buildToOrder marks a non-decrementing "build" SKU: the product is
	// produced on demand, so checkout does not consume stock for it.
	buildToOrder bool

	isConstructed bool
}

// NewProduct creates a product with validated attributes.
func NewProduct(id kernel.UUID, name string, price kernel.Money, stock int, active, buildToOrder bool) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if stock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}

	return &Product{
		id:            id,
		name:          name,
		price:         price,
		stock:         stock,
		active:        active,
		buildToOrder:  buildToOrder,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id kernel.UUID, name string, price kernel.Money, stock int, active, buildToOrder bool) (*Product, error) {
	return NewProduct(id, name, price, stock, active, buildToOrder)
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID { return p.id }

// Name returns the product's display name.
func (p *Product) Name() string { return p.name }

// Price returns the live catalog price.
func (p *Product) Price() kernel.Money { return p.price }

// Stock returns the current stock quantity.
func (p *Product) Stock() int { return p.stock }

// IsActive reports whether the product may currently be ordered.
func (p *Product) IsActive() bool { return p.active }

// IsBuildToOrder reports whether this is a non-decrementing "build" SKU.
func (p *Product) IsBuildToOrder() bool { return p.buildToOrder }

// Reserve decrements stock by the requested quantity.
//
// Build-to-order products are exempt: Reserve succeeds without touching
// their stock counter.
//
// Returns *InsufficientStockError if the requested quantity exceeds the
// available stock; the stock counter is left unchanged on failure.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if p.buildToOrder {
		return nil
	}
	if quantity > p.stock {
		return &InsufficientStockError{ProductID: p.id, Requested: quantity, Available: p.stock}
	}

	p.stock -= quantity
	return nil
}

// Release returns previously reserved stock to the product.
//
// Build-to-order products are exempt, mirroring Reserve: stock that was
// never consumed must not be restored.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if p.buildToOrder {
		return nil
	}

	p.stock += quantity
	return nil
}
