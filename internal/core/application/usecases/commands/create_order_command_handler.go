package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ErrCartIsEmpty is returned when a registered customer checks out with an
// empty cart.
var ErrCartIsEmpty = errors.New("cart is empty")

// CreateOrderCommandHandler orchestrates the checkout transaction.
//
// Inside one database transaction it locks the requested products in sorted
// order, validates availability and price, consumes stock, persists the new
// Pending order with its price snapshots and invoice, and clears the
// registered customer's cart. Only after that transaction commits does it
// notify the external assignment service; the notification outcome is
// recorded on the order's note in a separate short transaction and never
// affects the checkout response.
type CreateOrderCommandHandler struct {
	uowFactory     CheckoutUoWFactory
	noteUowFactory OrderUoWFactory
	notifier       ports.AssignmentNotifier
	invoiceSeq     *order.InvoiceSequence
	logger         *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	noteUowFactory OrderUoWFactory,
	notifier ports.AssignmentNotifier,
	invoiceSeq *order.InvoiceSequence,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		noteUowFactory: noteUowFactory,
		notifier:       notifier,
		invoiceSeq:     invoiceSeq,
		logger:         logger,
	}
}

// Handle processes the checkout command.
//
// The order total is always computed from the locked catalog prices; neither
// the cart's cached total nor a guest's declared prices are ever trusted for
// money amounts. Any failure before commit rolls the whole transaction back,
// leaving stock untouched.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, customerCart, policy, err := h.materializeLines(ctx, uow, cmd)
	if err != nil {
		return err
	}

	productIDs := services.ProductIDsOf(lines)
	products, err := uow.ProductRepository().GetForUpdate(ctx, productIDs)
	if err != nil {
		return err
	}

	if err = services.NewInventoryGuard().Reserve(products, lines, policy); err != nil {
		return err
	}

	for _, id := range productIDs {
		if err = uow.ProductRepository().Update(ctx, products[id]); err != nil {
			return err
		}
	}

	newOrder, err := h.buildOrder(cmd, lines, products)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if customerCart != nil {
		if err = uow.CartRepository().Clear(ctx, customerCart); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyAssignment(context.WithoutCancel(ctx), newOrder.ID())

	return nil
}

// materializeLines resolves the requested lines and the price policy for the
// checkout. Registered customers must resolve to a known account and order
// what their persisted cart holds; guests order what their validated payload
// declares.
func (h CreateOrderCommandHandler) materializeLines(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
) ([]services.RequestedLine, *cart.Cart, services.PricePolicy, error) {
	if cmd.IsGuest() {
		lines := make([]services.RequestedLine, 0, len(cmd.GuestItems()))
		for _, item := range cmd.GuestItems() {
			lines = append(lines, services.RequestedLine{
				ProductID:     item.ProductID(),
				Quantity:      item.Quantity(),
				ExpectedPrice: item.DeclaredPrice(),
			})
		}
		return lines, nil, services.PriceWithinEpsilon, nil
	}

	if _, err := uow.AccountRepository().Get(ctx, *cmd.CustomerID()); err != nil {
		return nil, nil, 0, err
	}

	customerCart, err := uow.CartRepository().GetByCustomer(ctx, *cmd.CustomerID())
	if err != nil {
		return nil, nil, 0, err
	}
	if customerCart.IsEmpty() {
		return nil, nil, 0, ErrCartIsEmpty
	}

	items := customerCart.Items()
	lines := make([]services.RequestedLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, services.RequestedLine{
			ProductID:     item.ProductID(),
			Quantity:      item.Quantity(),
			ExpectedPrice: item.PriceAtAdd(),
		})
	}
	return lines, customerCart, services.PriceExact, nil
}

// buildOrder assembles the Pending order from the reserved lines, snapshotting
// each product's locked name and price. Every order gets an Unpaid invoice
// with a generated number; requireInvoice is a stored attribute only.
func (h CreateOrderCommandHandler) buildOrder(
	cmd CreateOrderCommand,
	lines []services.RequestedLine,
	products map[kernel.UUID]*product.Product,
) (*order.Order, error) {
	now := time.Now().UTC()

	lineItems := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		p := products[line.ProductID]
		item, err := order.NewLineItem(p.ID(), p.Name(), line.Quantity, p.Price())
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.ShippingAddress(),
		cmd.Note(),
		cmd.PaymentMethod(),
		cmd.RequireInvoice(),
		now,
		lineItems,
	)
	if err != nil {
		return nil, err
	}

	if guest := cmd.GuestInfo(); guest != nil {
		newOrder.AppendNote(fmt.Sprintf(
			"guest checkout: %s, %s, %s", guest.FullName(), guest.Phone(), guest.Email()), now)
	}

	number := order.GenerateInvoiceNumber(now, h.invoiceSeq.Next())
	invoice, err := order.NewInvoice(number, newOrder.TotalAmount(), cmd.PaymentMethod(), now)
	if err != nil {
		return nil, err
	}
	if err = newOrder.AttachInvoice(invoice); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// notifyAssignment calls the assignment service and records the outcome on
// the order's note in its own short transaction. Every failure here is logged
// and swallowed: the order is already committed and the retry sweep will pick
// it up if it stays unassigned.
func (h CreateOrderCommandHandler) notifyAssignment(ctx context.Context, orderID kernel.UUID) {
	var message string
	result, err := h.notifier.NotifyOrderCreated(ctx, orderID)
	switch {
	case err != nil:
		h.logger.Warn("assignment notification failed",
			"order_id", orderID.String(), "error", err)
		message = fmt.Sprintf("assignment notification failed: %s", err)
	case !result.Success:
		message = fmt.Sprintf("assignment service declined: %s", result.Message)
	default:
		message = fmt.Sprintf("assignment requested: %s", result.Message)
	}

	if err := h.appendAssignmentNote(ctx, orderID, message); err != nil {
		h.logger.Warn("failed to record assignment outcome",
			"order_id", orderID.String(), "error", err)
	}
}

func (h CreateOrderCommandHandler) appendAssignmentNote(
	ctx context.Context,
	orderID kernel.UUID,
	message string,
) error {
	uow := h.noteUowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	aggregate.AppendNote(message, time.Now().UTC())

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
