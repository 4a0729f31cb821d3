// Package cart provides the shopping cart aggregate and the guest checkout
// payload value objects. A cart is the registered customer's staging area for
// an order; guest callers submit an equivalent item list directly.
package cart

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart instance was not created
// through the NewCart factory method.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Item is one cart position: a product reference, the requested quantity and
// the price the product had when it was added to the cart. The checkout
// transaction re-verifies this price against the locked catalog price.
type Item struct {
	productID  kernel.UUID
	quantity   int
	priceAtAdd kernel.Money

	isConstructed bool
}

// NewItem creates a validated cart item.
func NewItem(productID kernel.UUID, quantity int, priceAtAdd kernel.Money) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		productID:     productID,
		quantity:      quantity,
		priceAtAdd:    priceAtAdd,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("cart item must be created via NewItem")
	}
	return nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID { return i.productID }

// Quantity returns the requested quantity.
func (i Item) Quantity() int { return i.quantity }

// PriceAtAdd returns the catalog price captured when the item entered the cart.
func (i Item) PriceAtAdd() kernel.Money { return i.priceAtAdd }

// Cart is the registered customer's persisted cart aggregate.
type Cart struct {
	id          kernel.UUID
	customerID  kernel.UUID
	items       []Item
	cachedTotal kernel.Money

	isConstructed bool
}

// NewCart creates a cart for a customer. The cached total is maintained by
// the cart-editing flows outside this core and zeroed when the cart is
// cleared after checkout.
func NewCart(id, customerID kernel.UUID, items []Item, cachedTotal kernel.Money) (*Cart, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	c := &Cart{
		id:            id,
		customerID:    customerID,
		cachedTotal:   cachedTotal,
		isConstructed: true,
	}
	c.items = append(c.items, items...)
	return c, nil
}

// Validate ensures the Cart was created through NewCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID { return c.id }

// CustomerID returns the owning customer's identifier.
func (c *Cart) CustomerID() kernel.UUID { return c.customerID }

// Items returns a copy of the cart's items.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// CachedTotal returns the cart's cached total.
func (c *Cart) CachedTotal() kernel.Money { return c.cachedTotal }

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Clear removes all items and zeroes the cached total. Called inside the
// checkout transaction after the order has been persisted.
func (c *Cart) Clear() {
	c.items = nil
	c.cachedTotal = kernel.ZeroMoney()
}
