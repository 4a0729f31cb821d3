package account_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	for _, tc := range []struct {
		s    string
		role account.Role
	}{
		{"CUSTOMER", account.RoleCustomer},
		{"STAFF", account.RoleStaff},
		{"SHIPPER", account.RoleShipper},
	} {
		role, err := account.RoleFromString(tc.s)
		require.NoError(t, err)
		assert.Equal(t, tc.role, role)
	}

	_, err := account.RoleFromString("admin")
	require.Error(t, err)
	_, err = account.RoleFromString("UNKNOWN")
	require.Error(t, err)
}

func TestAuthorizeTransition(t *testing.T) {
	t.Run("customer may cancel own order", func(t *testing.T) {
		require.NoError(t, account.AuthorizeTransition(account.RoleCustomer, true, order.Cancelled))
	})

	t.Run("customer may not cancel someone else's order", func(t *testing.T) {
		err := account.AuthorizeTransition(account.RoleCustomer, false, order.Cancelled)
		require.ErrorIs(t, err, account.ErrForbidden)
	})

	t.Run("customer may not request any other target", func(t *testing.T) {
		for _, target := range []order.Status{
			order.Assigned, order.Confirmed, order.Shipping, order.Delivered, order.External,
		} {
			err := account.AuthorizeTransition(account.RoleCustomer, true, target)
			require.ErrorIs(t, err, account.ErrForbidden, target.String())
		}
	})

	t.Run("staff may request every target", func(t *testing.T) {
		for _, target := range []order.Status{
			order.Assigned, order.Confirmed, order.Shipping, order.Delivered, order.Cancelled, order.External,
		} {
			require.NoError(t, account.AuthorizeTransition(account.RoleStaff, false, target), target.String())
		}
	})

	t.Run("shipper may request every target", func(t *testing.T) {
		for _, target := range []order.Status{
			order.Assigned, order.Confirmed, order.Shipping, order.Delivered, order.Cancelled, order.External,
		} {
			require.NoError(t, account.AuthorizeTransition(account.RoleShipper, false, target), target.String())
		}
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		require.Error(t, account.AuthorizeTransition(account.RoleUnknown, true, order.Cancelled))
	})
}

func TestNewAccount(t *testing.T) {
	t.Run("creates valid account", func(t *testing.T) {
		a, err := account.NewAccount(kernel.NewUUID(), "jane", account.RoleCustomer)
		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "jane", a.Username())
		assert.Equal(t, account.RoleCustomer, a.Role())
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := account.NewAccount(kernel.NewUUID(), "", account.RoleStaff)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a account.Account
		require.ErrorIs(t, a.Validate(), account.ErrAccountIsNotConstructed)
	})
}
