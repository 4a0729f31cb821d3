package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its related rows from the
// database and shapes it for the API.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderRow is the scan target for the order header join. Customer and
// shipper usernames come from left joins against accounts, so both stay
// nullable for guest and unassigned orders.
type orderRow struct {
	ID               uuid.UUID
	Status           int
	TotalAmount      decimal.Decimal
	ShippingAddress  string
	Note             string
	CancelReason     string
	PaymentMethod    string
	RequireInvoice   bool
	OrderDate        time.Time
	CustomerID       *uuid.UUID
	CustomerUsername *string
	ShipperID        *uuid.UUID
	ShipperUsername  *string
}

// Handle executes the query.
// Returns an ObjectNotFoundError when no order with the given ID exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.total_amount,
			o.shipping_address,
			o.note,
			o.cancel_reason,
			o.payment_method,
			o.require_invoice,
			o.order_date,
			o.customer_id,
			c.username AS customer_username,
			o.shipper_id,
			s.username AS shipper_username
		FROM orders o
		LEFT JOIN accounts c ON c.id = o.customer_id
		LEFT JOIN accounts s ON s.id = o.shipper_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	response := GetOrderQueryResponse{
		ID:              row.ID.String(),
		Status:          order.Status(row.Status).String(),
		TotalAmount:     row.TotalAmount,
		ShippingAddress: row.ShippingAddress,
		Note:            row.Note,
		CancelReason:    row.CancelReason,
		PaymentMethod:   row.PaymentMethod,
		RequireInvoice:  row.RequireInvoice,
		OrderDate:       row.OrderDate,
		Customer:        partyOf(row.CustomerID, row.CustomerUsername),
		Shipper:         partyOf(row.ShipperID, row.ShipperUsername),
	}

	if response.OrderDetails, err = h.loadDetails(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.Invoices, err = h.loadInvoices(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func partyOf(id *uuid.UUID, username *string) *PartyResponse {
	if id == nil {
		return nil
	}
	party := &PartyResponse{ID: id.String()}
	if username != nil {
		party.Username = *username
	}
	return party
}

func (h GetOrderQueryHandler) loadDetails(ctx context.Context, orderID kernel.UUID) ([]OrderDetailResponse, error) {
	details := make([]OrderDetailResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var detail OrderDetailResponse
		if err = rows.Scan(&productID, &detail.ProductName, &detail.Quantity, &detail.Price); err != nil {
			return nil, err
		}
		detail.ProductID = productID.String()
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

func (h GetOrderQueryHandler) loadInvoices(ctx context.Context, orderID kernel.UUID) ([]InvoiceResponse, error) {
	invoices := make([]InvoiceResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			total,
			status,
			payment_method,
			note,
			issued_at
		FROM invoices
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var invoice InvoiceResponse
		var status int
		if err = rows.Scan(&invoice.Number, &invoice.Total, &status,
			&invoice.PaymentMethod, &invoice.Note, &invoice.IssuedAt); err != nil {
			return nil, err
		}
		invoice.Status = order.InvoiceStatus(status).String()
		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}
