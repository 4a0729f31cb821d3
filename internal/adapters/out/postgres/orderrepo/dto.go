// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and shipper assignment.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	ShipperID       *uuid.UUID      `gorm:"type:uuid;index"`
	Status          int             `gorm:"index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ShippingAddress string
	Note            string `gorm:"type:text"`
	CancelReason    string
	PaymentMethod   string
	RequireInvoice  bool
	OrderDate       time.Time

	Items    []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
	Invoices []InvoiceDTO   `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item snapshot. Line items are
// written once with their order and never mutated afterwards.
type OrderItemDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index"`
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// InvoiceDTO represents one persisted invoice. The invoice number carries a
// unique index; a generated number that collides surfaces as a constraint
// violation on insert.
type InvoiceDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index"`
	Number        string          `gorm:"uniqueIndex"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status        int
	PaymentMethod string
	Note          string
	IssuedAt      time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional customer and shipper
// references and the owned line item and invoice rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	var shipperID *uuid.UUID
	if id := aggregate.ShipperID(); id != nil {
		raw := id.Bytes()
		shipperID = &raw
	}

	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      customerID,
		ShipperID:       shipperID,
		Status:          int(aggregate.Status()),
		TotalAmount:     aggregate.TotalAmount().Amount(),
		ShippingAddress: aggregate.ShippingAddress(),
		Note:            aggregate.Note(),
		CancelReason:    aggregate.CancelReason(),
		PaymentMethod:   aggregate.PaymentMethod(),
		RequireInvoice:  aggregate.RequireInvoice(),
		OrderDate:       aggregate.OrderDate(),
	}

	for _, item := range aggregate.LineItems() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     dto.ID,
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
		})
	}

	for _, invoice := range aggregate.Invoices() {
		dto.Invoices = append(dto.Invoices, InvoiceDTO{
			OrderID:       dto.ID,
			Number:        invoice.Number(),
			Total:         invoice.Total().Amount(),
			Status:        int(invoice.Status()),
			PaymentMethod: invoice.PaymentMethod(),
			Note:          invoice.Note(),
			IssuedAt:      invoice.IssuedAt(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, relationships,
// line items and invoices using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := optionalUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	shipperID, err := optionalUUID(dto.ShipperID)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.ProductName, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	invoices := make([]order.Invoice, 0, len(dto.Invoices))
	for _, invoiceDTO := range dto.Invoices {
		total, invErr := kernel.NewMoney(invoiceDTO.Total)
		if invErr != nil {
			return nil, invErr
		}
		invoice, invErr := order.RestoreInvoice(
			invoiceDTO.Number, total, order.InvoiceStatus(invoiceDTO.Status),
			invoiceDTO.PaymentMethod, invoiceDTO.Note, invoiceDTO.IssuedAt)
		if invErr != nil {
			return nil, invErr
		}
		invoices = append(invoices, invoice)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		shipperID,
		order.Status(dto.Status),
		totalAmount,
		dto.ShippingAddress,
		dto.Note,
		dto.CancelReason,
		dto.PaymentMethod,
		dto.RequireInvoice,
		dto.OrderDate,
		items,
		invoices,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
