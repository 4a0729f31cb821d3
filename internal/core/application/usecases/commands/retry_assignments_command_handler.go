package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ErrNoUnassignedOrdersFound indicates the sweep found nothing to re-notify.
// An expected business no-op, not a failure.
var ErrNoUnassignedOrdersFound = errors.New("no unassigned orders found")

// RetryAssignmentsCommandHandler re-notifies the assignment service about
// Pending orders that still have no shipper. The checkout's own notification
// is best effort; this sweep is what guarantees every order eventually
// reaches the assignment service.
type RetryAssignmentsCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.AssignmentNotifier
	logger     *slog.Logger
}

// NewRetryAssignmentsCommandHandler creates a handler for the assignment
// retry sweep.
func NewRetryAssignmentsCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.AssignmentNotifier,
	logger *slog.Logger,
) RetryAssignmentsCommandHandler {
	return RetryAssignmentsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the retry sweep.
//
// Eligible order IDs are collected in a short read transaction; no lock is
// held across the notifier calls. Each outcome is appended to the order's
// note, like the checkout's own notification; per-order failures are logged
// and do not abort the sweep. Returns ErrNoUnassignedOrdersFound when there
// is nothing to do.
func (h RetryAssignmentsCommandHandler) Handle(ctx context.Context, cmd RetryAssignmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderIDs, err := h.collectUnassigned(ctx)
	if err != nil {
		return err
	}
	if len(orderIDs) == 0 {
		return ErrNoUnassignedOrdersFound
	}

	for _, orderID := range orderIDs {
		h.renotify(ctx, orderID)
	}

	return nil
}

func (h RetryAssignmentsCommandHandler) collectUnassigned(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllPendingUnassigned(ctx)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(orders))
	for _, aggregate := range orders {
		orderIDs = append(orderIDs, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orderIDs, nil
}

func (h RetryAssignmentsCommandHandler) renotify(ctx context.Context, orderID kernel.UUID) {
	var message string
	result, err := h.notifier.NotifyOrderCreated(ctx, orderID)
	switch {
	case err != nil:
		h.logger.Warn("assignment re-notification failed",
			"order_id", orderID.String(), "error", err)
		message = fmt.Sprintf("assignment re-notification failed: %s", err)
	case !result.Success:
		h.logger.Info("assignment service declined re-notification",
			"order_id", orderID.String(), "message", result.Message)
		message = fmt.Sprintf("assignment service declined: %s", result.Message)
	default:
		message = fmt.Sprintf("assignment re-requested: %s", result.Message)
	}

	if err := h.recordOutcome(ctx, orderID, message); err != nil {
		h.logger.Warn("failed to record re-notification outcome",
			"order_id", orderID.String(), "error", err)
	}
}

func (h RetryAssignmentsCommandHandler) recordOutcome(
	ctx context.Context,
	orderID kernel.UUID,
	message string,
) error {
	uow := h.uowFactory.Create()
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
