package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is an immutable snapshot of one ordered product position.
// The unit price is captured at order time and is deliberately decoupled
// from the live catalog price: later price changes never affect an existing
// order's total.
//
// LineItem is created once with the order and never mutated afterward.
type LineItem struct {
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money

	isConstructed bool
}

// NewLineItem creates a validated line item snapshot.
//
// Parameters:
//   - productID: The referenced product (must be a valid UUID)
//   - productName: Display name captured for invoices and order history
//   - quantity: Ordered quantity (must be positive)
//   - unitPrice: The locked catalog price at order time
func NewLineItem(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return LineItem{
		productID:     productID,
		productName:   productName,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the LineItem was created through NewLineItem.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return errs.NewValueIsRequiredError("LineItem must be created via NewLineItem")
	}
	return nil
}

// ProductID returns the referenced product's identifier.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// ProductName returns the product display name captured at order time.
func (li LineItem) ProductName() string {
	return li.productName
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price captured at order time.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Mul(li.quantity)
}
