// Package account provides the actor model used to authorize order status
// changes: accounts, a closed role enum and the explicit authorization table
// consulted before the order state machine is asked about a transition.
//
// Account management itself (registration, credentials, tokens) is an
// external collaborator; this core only resolves an actor's role.
package account

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through the NewAccount factory method.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

	// ErrForbidden is returned when an actor is not authorized to request a
	// given order status transition.
	ErrForbidden = errors.New("actor is not authorized for this status change")
)

// Role is the closed set of actor roles known to the fulfillment core.
// Authorization decisions are made against this enum, never by matching
// role-name substrings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is a registered buyer. Customers may only cancel their
	// own orders, with a reason.
	RoleCustomer

	// RoleStaff is platform back-office staff. Staff may request any legal
	// transition on any order.
	RoleStaff

	// RoleShipper is a delivery agent. Shippers may request any legal
	// transition on any order.
	RoleShipper
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "UNKNOWN",
		RoleCustomer: "CUSTOMER",
		RoleStaff:    "STAFF",
		RoleShipper:  "SHIPPER",
	}
}

// RoleFromString parses a Role from its string representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleStaff, RoleShipper:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// allowedTargets is the authorization table: which target statuses each role
// may request. Transition legality (current -> target) is a separate check
// owned by the order state machine.
func allowedTargets() map[Role][]order.Status {
	return map[Role][]order.Status{
		RoleCustomer: {order.Cancelled},
		RoleStaff:    {order.Assigned, order.Confirmed, order.Shipping, order.Delivered, order.Cancelled, order.External},
		RoleShipper:  {order.Assigned, order.Confirmed, order.Shipping, order.Delivered, order.Cancelled, order.External},
	}
}

// AuthorizeTransition decides whether an actor may request a transition to
// the target status on a given order.
//
// Rules:
//   - Customers may only act on orders they own, and only to cancel them
//   - Staff and shippers may request any target in their table entry,
//     on any order
//
// Returns ErrForbidden when the actor may not request the target status;
// whether the transition itself is legal is checked afterwards by the
// state machine.
func AuthorizeTransition(role Role, isOwner bool, target order.Status) error {
	if err := role.Validate(); err != nil {
		return err
	}

	if role == RoleCustomer && !isOwner {
		return ErrForbidden
	}

	for _, allowed := range allowedTargets()[role] {
		if allowed == target {
			return nil
		}
	}
	return ErrForbidden
}

// Account is an actor resolved from the identity collaborator.
type Account struct {
	id       kernel.UUID
	username string
	role     Role

	isConstructed bool
}

// NewAccount creates a validated account.
func NewAccount(id kernel.UUID, username string, role Role) (*Account, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	if username == "" {
		return nil, errs.NewValueIsRequiredError("username")
	}

	return &Account{
		id:            id,
		username:      username,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Account was created through NewAccount.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID { return a.id }

// Username returns the account's username.
func (a *Account) Username() string { return a.username }

// Role returns the account's role.
func (a *Account) Role() Role { return a.role }
