package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand or NewCreateGuestOrderCommand constructor",
	)
	ErrShippingAddressIsRequired = errors.New("shipping address is required")
)

// CreateOrderCommand represents a checkout request, either by a registered
// customer (items come from their persisted cart) or by a guest (items come
// with the command, pre-validated as guest payload value objects).
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, "12 Elm Street, Springfield", "", "COD", true)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, noteUowFactory, notifier, invoiceSeq, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      *kernel.UUID
	guestInfo       *cart.GuestInfo
	guestItems      []cart.GuestItem
	shippingAddress string
	note            string
	paymentMethod   string
	requireInvoice  bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a checkout command for a registered customer.
// The customer's persisted cart supplies the items; the command only carries
// delivery and billing intent.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	shippingAddress string,
	note string,
	paymentMethod string,
	requireInvoice bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		note:           note,
		paymentMethod:  paymentMethod,
		requireInvoice: requireInvoice,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setShippingAddress(shippingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// NewCreateGuestOrderCommand creates a checkout command for an
// unauthenticated buyer. Contact details and items travel with the command;
// both must already be valid guest payload value objects.
func NewCreateGuestOrderCommand(
	orderID kernel.UUID,
	guestInfo cart.GuestInfo,
	guestItems []cart.GuestItem,
	shippingAddress string,
	note string,
	paymentMethod string,
	requireInvoice bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		note:           note,
		paymentMethod:  paymentMethod,
		requireInvoice: requireInvoice,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setGuest(guestInfo, guestItems),
		orderCommand.setShippingAddress(shippingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the registered customer's ID, or nil for guest checkouts.
func (c CreateOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// IsGuest reports whether this is a guest checkout.
func (c CreateOrderCommand) IsGuest() bool {
	return c.customerID == nil
}

// GuestInfo returns the guest contact details, or nil for registered checkouts.
func (c CreateOrderCommand) GuestInfo() *cart.GuestInfo {
	return c.guestInfo
}

// GuestItems returns the guest-submitted items, nil for registered checkouts.
func (c CreateOrderCommand) GuestItems() []cart.GuestItem {
	return c.guestItems
}

// ShippingAddress returns the delivery address.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// Note returns the optional order note.
func (c CreateOrderCommand) Note() string {
	return c.note
}

// PaymentMethod returns the payment method annotation.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// RequireInvoice reports whether the buyer requested a formal invoice.
func (c CreateOrderCommand) RequireInvoice() bool {
	return c.requireInvoice
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = &customerID
	return nil
}

func (c *CreateOrderCommand) setGuest(guestInfo cart.GuestInfo, guestItems []cart.GuestItem) error {
	if err := guestInfo.Validate(); err != nil {
		return err
	}
	if err := cart.ValidateGuestItems(guestItems); err != nil {
		return err
	}

	c.guestInfo = &guestInfo
	c.guestItems = make([]cart.GuestItem, len(guestItems))
	copy(c.guestItems, guestItems)
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(shippingAddress string) error {
	if shippingAddress == "" {
		return ErrShippingAddressIsRequired
	}

	c.shippingAddress = shippingAddress
	return nil
}
