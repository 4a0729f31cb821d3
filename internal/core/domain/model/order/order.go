package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoLineItems is returned when an order is created without any line items.
	ErrOrderHasNoLineItems = errors.New("order must have at least one line item")
)

const (
	shippingAddressMinLen = 10
	shippingAddressMaxLen = 500

	cancelReasonMinLen = 10
	cancelReasonMaxLen = 200
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from checkout through delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a shipping address of 10-500 characters
//   - Must have at least one line item
//   - Total amount equals the sum of line item subtotals at creation time,
//     independent of later catalog price changes
//   - Status transitions follow the lifecycle transition table
//   - Can only be created through the NewOrder constructor
//
// The customer reference is optional: guest orders carry no owning customer.
// The shipper reference stays nil until assignment.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the owning customer's ID (nil for guest orders)
	customerID *kernel.UUID

	// shipperID is the assigned shipper's ID (nil until assignment)
	shipperID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// totalAmount is the order total locked in at creation time
	totalAmount kernel.Money

	shippingAddress string
	note            string
	cancelReason    string
	paymentMethod   string
	requireInvoice  bool
	orderDate       time.Time

	lineItems []LineItem
	invoices  []Invoice

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order in Pending status. This is the only way to create
// a valid Order, ensuring all business invariants are maintained.
//
// The total amount is computed from the line items' locked prices; callers
// cannot supply a total of their own.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: Owning customer, or nil for guest orders
//   - shippingAddress: Delivery address (10-500 characters)
//   - note: Optional free-text note
//   - paymentMethod: Optional payment method annotation
//   - requireInvoice: Whether the customer requested a formal invoice
//   - orderDate: Creation timestamp
//   - lineItems: Price-and-quantity snapshots (at least one)
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	shippingAddress string,
	note string,
	paymentMethod string,
	requireInvoice bool,
	orderDate time.Time,
	lineItems []LineItem,
) (*Order, error) {
	o := &Order{
		status:         Pending,
		note:           note,
		paymentMethod:  paymentMethod,
		requireInvoice: requireInvoice,
		orderDate:      orderDate,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, preserving its
// status, shipper assignment, cancel reason, invoices and total.
// The stored total is trusted as-is: it reflects prices locked at creation
// and must not be recomputed against the live catalog.
func RestoreOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	shipperID *kernel.UUID,
	status Status,
	totalAmount kernel.Money,
	shippingAddress string,
	note string,
	cancelReason string,
	paymentMethod string,
	requireInvoice bool,
	orderDate time.Time,
	lineItems []LineItem,
	invoices []Invoice,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, customerID, shippingAddress, note, paymentMethod, requireInvoice, orderDate, lineItems)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.shipperID = shipperID
	o.cancelReason = cancelReason
	o.totalAmount = totalAmount
	o.invoices = append(o.invoices, invoices...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's ID, or nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// ShipperID returns the assigned shipper's ID, or nil if unassigned.
func (o *Order) ShipperID() *kernel.UUID {
	return o.shipperID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the order total locked in at creation time.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// Note returns the order's annotation trail.
func (o *Order) Note() string {
	return o.note
}

// CancelReason returns the cancellation reason, empty unless cancelled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// PaymentMethod returns the payment method annotation.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// RequireInvoice reports whether the customer requested a formal invoice.
func (o *Order) RequireInvoice() bool {
	return o.requireInvoice
}

// OrderDate returns the creation timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// LineItems returns a copy of the order's line item snapshots.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Invoices returns a copy of the order's invoices.
func (o *Order) Invoices() []Invoice {
	invoices := make([]Invoice, len(o.invoices))
	copy(invoices, o.invoices)
	return invoices
}

// IsOwnedBy reports whether the given account owns this order.
// Guest orders are owned by nobody.
func (o *Order) IsOwnedBy(accountID kernel.UUID) bool {
	return o.customerID != nil && o.customerID.IsEqual(accountID)
}

// AttachInvoice adds an invoice to the order. Called inside the creation
// transaction; an order practically carries exactly one invoice.
func (o *Order) AttachInvoice(invoice Invoice) error {
	if !invoice.isConstructed {
		return errs.NewValueIsRequiredError("invoice must be created via NewInvoice")
	}
	o.invoices = append(o.invoices, invoice)
	return nil
}

// TransitionTo moves the order to the target status following the lifecycle
// transition table. Cancellation must go through Cancel, which records the
// mandatory reason.
//
// Returns *InvalidTransitionError if the transition is not allowed.
func (o *Order) TransitionTo(target Status) error {
	if target == Cancelled {
		return errs.NewValueIsRequiredError("cancel reason (use Cancel for cancellation)")
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignShipper assigns the order to a shipper and moves it to Assigned.
//
// Returns an error if the shipper ID is invalid or the order is not in a
// status from which assignment is allowed.
func (o *Order) AssignShipper(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.shipperID = &shipperID
	return nil
}

// Cancel moves the order to Cancelled and records the mandatory reason.
// The caller is responsible for restoring consumed stock within the same
// persistence transaction that writes the new status.
//
// Returns:
//   - *InvalidTransitionError if the order is already terminal
//   - a validation error if the reason is shorter than 10 or longer than 200 characters
func (o *Order) Cancel(reason string) error {
	if len(reason) < cancelReasonMinLen || len(reason) > cancelReasonMaxLen {
		return errs.NewValueIsOutOfRangeError("cancel reason length", len(reason), cancelReasonMinLen, cancelReasonMaxLen)
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelReason = reason
	return nil
}

// AppendNote appends a timestamped annotation to the order's note trail.
// Used for recording assignment outcomes without touching status or shipper.
func (o *Order) AppendNote(message string, at time.Time) {
	entry := fmt.Sprintf("[%s] %s", at.Format(time.RFC3339), message)
	if o.note == "" {
		o.note = entry
		return
	}
	o.note = o.note + "\n" + entry
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the optional owning customer.
func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setShippingAddress validates and sets the delivery address.
func (o *Order) setShippingAddress(address string) error {
	if len(address) < shippingAddressMinLen || len(address) > shippingAddressMaxLen {
		return errs.NewValueIsOutOfRangeError(
			"shipping address length", len(address), shippingAddressMinLen, shippingAddressMaxLen)
	}
	o.shippingAddress = address
	return nil
}

// setLineItems validates the line items and locks in the order total as the
// sum of their subtotals.
func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoLineItems
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total = total.Add(item.Subtotal())
	}

	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	o.totalAmount = total
	return nil
}
