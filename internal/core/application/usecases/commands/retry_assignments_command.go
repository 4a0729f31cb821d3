package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRetryAssignmentsCommandIsNotConstructed = errors.New(
	"RetryAssignmentsCommand must be created via NewRetryAssignmentsCommand constructor",
)

// RetryAssignmentsCommand represents a request to re-notify the assignment
// service about orders still waiting for a shipper. Carries no parameters;
// the handler sweeps storage for eligible orders.
type RetryAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewRetryAssignmentsCommand creates a command to sweep unassigned orders.
func NewRetryAssignmentsCommand() RetryAssignmentsCommand {
	return RetryAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRetryAssignmentsCommandIsNotConstructed if validation fails.
func (c RetryAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryAssignmentsCommandIsNotConstructed)
}
