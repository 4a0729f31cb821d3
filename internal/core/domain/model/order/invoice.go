package order

import (
	"fmt"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus int

const (
	// InvoiceUnpaid is the initial status of every invoice created with an order.
	InvoiceUnpaid InvoiceStatus = iota + 1

	// InvoicePaid indicates the invoice has been settled.
	InvoicePaid
)

// String returns the human-readable name of the invoice status.
func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceUnpaid:
		return "UNPAID"
	case InvoicePaid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

// Invoice is the billing record created alongside an order. Exactly one
// invoice is created per order, inside the same transaction, with a total
// mirroring the order's total.
type Invoice struct {
	number        string
	total         kernel.Money
	status        InvoiceStatus
	paymentMethod string
	note          string
	issuedAt      time.Time

	isConstructed bool
}

// NewInvoice creates an invoice in UNPAID status.
//
// Parameters:
//   - number: The generated invoice number (must not be empty; unique in storage)
//   - total: The invoiced amount, mirroring the order total
//   - paymentMethod: Free-form payment method annotation (may be empty)
//   - issuedAt: Issue timestamp
func NewInvoice(number string, total kernel.Money, paymentMethod string, issuedAt time.Time) (Invoice, error) {
	if number == "" {
		return Invoice{}, errs.NewValueIsRequiredError("invoice number")
	}

	return Invoice{
		number:        number,
		total:         total,
		status:        InvoiceUnpaid,
		paymentMethod: paymentMethod,
		issuedAt:      issuedAt,
		isConstructed: true,
	}, nil
}

// RestoreInvoice reconstructs an invoice from persistence without resetting
// its payment status.
func RestoreInvoice(number string, total kernel.Money, status InvoiceStatus, paymentMethod, note string, issuedAt time.Time) (Invoice, error) {
	inv, err := NewInvoice(number, total, paymentMethod, issuedAt)
	if err != nil {
		return Invoice{}, err
	}
	inv.status = status
	inv.note = note
	return inv, nil
}

// Number returns the generated invoice number.
func (i Invoice) Number() string { return i.number }

// Total returns the invoiced amount.
func (i Invoice) Total() kernel.Money { return i.total }

// Status returns the payment status.
func (i Invoice) Status() InvoiceStatus { return i.status }

// PaymentMethod returns the payment method annotation.
func (i Invoice) PaymentMethod() string { return i.paymentMethod }

// Note returns the free-text note.
func (i Invoice) Note() string { return i.note }

// IssuedAt returns the issue timestamp.
func (i Invoice) IssuedAt() time.Time { return i.issuedAt }

// GenerateInvoiceNumber produces a date-seeded invoice number with a
// sequence suffix, e.g. "INV-20260830-000042". Uniqueness is ultimately
// enforced by the storage layer's unique constraint.
func GenerateInvoiceNumber(issuedAt time.Time, seq uint64) string {
	return fmt.Sprintf("INV-%s-%06d", issuedAt.Format("20060102"), seq%1_000_000)
}

// InvoiceSequence hands out monotonically increasing sequence numbers for
// invoice generation. Safe for concurrent use.
type InvoiceSequence struct {
	next atomic.Uint64
}

// NewInvoiceSequence creates a sequence starting after the given seed.
// Seeding with a clock-derived value keeps numbers from colliding across
// process restarts within the same day.
func NewInvoiceSequence(seed uint64) *InvoiceSequence {
	s := &InvoiceSequence{}
	s.next.Store(seed)
	return s
}

// Next returns the next sequence number.
func (s *InvoiceSequence) Next() uint64 {
	return s.next.Add(1)
}
