package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for rejected status transitions.
// Use errors.Is to classify, and errors.As with *InvalidTransitionError
// to inspect the offending pair of statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status change that is not present in the
// order lifecycle transition table. It always names both the current and the
// requested status; a disallowed transition is never silently coerced.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──┬──> Assigned ──> Confirmed ──> Shipping ──> Delivered
//	          │                                   ^
//	          ├──> External ──────────────────────┘
//	          │
//	          └──> Cancelled  (also reachable from Assigned, Confirmed,
//	                           Shipping and External)
//
// Pending is the sole initial state. Delivered and Cancelled are terminal:
// no outgoing transitions exist from either.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every order created by the checkout
	// transaction. Orders in this status are waiting for shipper assignment.
	Pending

	// Assigned indicates a shipper has been assigned to the order.
	Assigned

	// Confirmed indicates the assigned shipper accepted the order.
	Confirmed

	// Shipping indicates the order is on its way to the customer.
	Shipping

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled; consumed stock has been
	// restored. This is a terminal state with no further transitions allowed.
	Cancelled

	// External indicates the order was handed to an external fulfillment
	// channel; it re-enters the normal flow at Shipping.
	External
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		Confirmed: "CONFIRMED",
		Shipping:  "SHIPPING",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		External:  "EXTERNAL",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		Confirmed: "CONFIRMED",
		Shipping:  "SHIPPING",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		External:  "EXTERNAL",
	}
}

// allowedTransitions is the single source of truth for the order lifecycle.
// A transition absent from this table is rejected with InvalidTransitionError.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled, External},
		Assigned:  {Confirmed, Cancelled},
		Confirmed: {Shipping, Cancelled},
		Shipping:  {Delivered, Cancelled},
		External:  {Shipping, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses a Status from its string representation.
// Used when reconstructing statuses from API payloads.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Delivered and Cancelled are the terminal states of the lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ConsumesStock reports whether an order in this status holds decremented
// product stock. Cancellation from any of these states must restore stock;
// the terminal states hold nothing to restore.
func (s Status) ConsumesStock() bool {
	switch s {
	case Pending, Assigned, Confirmed, Shipping, External:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks whether a transition to the target status is legal
// without performing it.
//
// Returns:
//   - nil if the transition appears in the lifecycle table
//   - *InvalidTransitionError naming both statuses otherwise
//
// Legality is independent of actor role; actor authorization for a given
// target status is enforced separately by the caller.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return nil
		}
	}
	return &InvalidTransitionError{From: s, To: target}
}

// TransitionTo performs the transition to the target status.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, *InvalidTransitionError) if the transition is not allowed
//
// This method is used by the Order aggregate to enforce state transitions.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return 0, err
	}
	return target, nil
}
