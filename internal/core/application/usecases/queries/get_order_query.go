// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read through GORM directly, bypassing the aggregate
// repositories, and produce response shapes tailored to the API.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items, invoices and
// related parties.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	response, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the queried order's unique identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PartyResponse identifies a customer or shipper related to the order.
type PartyResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// OrderDetailResponse is one line item of the order, carrying the price
// snapshot captured at order time.
type OrderDetailResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InvoiceResponse is one invoice attached to the order.
type InvoiceResponse struct {
	Number        string          `json:"number"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	Note          string          `json:"note"`
	IssuedAt      time.Time       `json:"issuedAt"`
}

// GetOrderQueryResponse is the API shape of one order.
type GetOrderQueryResponse struct {
	ID              string                `json:"id"`
	Status          string                `json:"status"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	ShippingAddress string                `json:"shippingAddress"`
	Note            string                `json:"note"`
	CancelReason    string                `json:"cancelReason"`
	PaymentMethod   string                `json:"paymentMethod"`
	RequireInvoice  bool                  `json:"requireInvoice"`
	OrderDate       time.Time             `json:"orderDate"`
	Customer        *PartyResponse        `json:"customer"`
	Shipper         *PartyResponse        `json:"shipper"`
	OrderDetails    []OrderDetailResponse `json:"orderDetails"`
	Invoices        []InvoiceResponse     `json:"invoices"`
}
