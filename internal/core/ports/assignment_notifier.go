package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentResult is the outcome reported by the external assignment service.
type AssignmentResult struct {
	Success bool
	Message string
}

// AssignmentNotifier notifies the external assignment service that a new
// order awaits a shipper.
//
// The call happens strictly after the order transaction has committed and is
// best effort: a failure is recorded on the order's note but never fails the
// checkout. The assignment retry sweep re-notifies later.
type AssignmentNotifier interface {
	NotifyOrderCreated(ctx context.Context, orderID kernel.UUID) (AssignmentResult, error)
}
