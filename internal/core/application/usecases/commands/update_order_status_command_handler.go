package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles role-gated order status transitions.
//
// The order row is locked before its status is inspected, so the transition
// check always runs against the current state; a concurrent change surfaces
// as an invalid transition rather than a silent overwrite. When the target
// is Cancelled and the order still consumes stock, the line items' products
// are locked and restored inside the same transaction as the status write.
type UpdateOrderStatusCommandHandler struct {
	uowFactory StatusUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory StatusUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status change command.
//
// Order of checks: actor authorization first, then transition legality, so a
// forbidden actor learns nothing about the order's current state. Assignment
// to a shipper records the shipper reference; cancellation records the reason
// and compensates stock.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor, err := uow.AccountRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if err = account.AuthorizeTransition(
		actor.Role(), aggregate.IsOwnedBy(actor.ID()), cmd.TargetStatus()); err != nil {
		return err
	}

	previousStatus := aggregate.Status()

	if err = h.applyTransition(ctx, uow, aggregate, actor, cmd); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishStatusChanged(context.WithoutCancel(ctx), cmd, previousStatus)

	return nil
}

// applyTransition mutates the locked aggregate according to the target
// status and, for cancellation out of a stock-consuming state, restores the
// consumed stock within the same transaction.
func (h UpdateOrderStatusCommandHandler) applyTransition(
	ctx context.Context,
	uow StatusUoW,
	aggregate *order.Order,
	actor *account.Account,
	cmd UpdateOrderStatusCommand,
) error {
	switch cmd.TargetStatus() {
	case order.Cancelled:
		consumesStock := aggregate.Status().ConsumesStock()

		if err := aggregate.Cancel(cmd.CancelReason()); err != nil {
			return err
		}

		if consumesStock {
			return h.compensateStock(ctx, uow, aggregate)
		}
		return nil

	case order.Assigned:
		// Assignment records which shipper took the order. Staff assign on
		// behalf of the assignment service's pick; shippers assign themselves.
		return aggregate.AssignShipper(actor.ID())

	default:
		return aggregate.TransitionTo(cmd.TargetStatus())
	}
}

// compensateStock locks the cancelled order's products and returns the
// original line item quantities to stock.
func (h UpdateOrderStatusCommandHandler) compensateStock(
	ctx context.Context,
	uow StatusUoW,
	aggregate *order.Order,
) error {
	items := aggregate.LineItems()
	productIDs := services.ProductIDsOfItems(items)

	products, err := uow.ProductRepository().GetForUpdate(ctx, productIDs)
	if err != nil {
		return err
	}

	if err = services.NewStockCompensator().Restore(products, items); err != nil {
		return err
	}

	for _, id := range productIDs {
		if err = uow.ProductRepository().Update(ctx, products[id]); err != nil {
			return err
		}
	}

	return nil
}

// publishStatusChanged emits the status-changed event after commit. Publish
// failures are logged and swallowed; downstream consumers reconcile from
// storage.
func (h UpdateOrderStatusCommandHandler) publishStatusChanged(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
	from order.Status,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:    cmd.OrderID(),
		From:       from,
		To:         cmd.TargetStatus(),
		ActorID:    cmd.ActorID(),
		OccurredAt: time.Now().UTC(),
	}

	if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
		h.logger.Warn("failed to publish status changed event",
			"order_id", cmd.OrderID().String(),
			"from", from.String(),
			"to", cmd.TargetStatus().String(),
			"error", err)
	}
}
