package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type updateStatusFixture struct {
	handler   commands.UpdateOrderStatusCommandHandler
	uow       *MockStatusUoW
	orders    *MockOrderRepository
	products  *MockProductRepository
	accounts  *MockAccountRepository
	publisher *MockOrderEventPublisher
}

func newUpdateStatusFixture(t *testing.T) *updateStatusFixture {
	t.Helper()

	f := &updateStatusFixture{
		uow:       new(MockStatusUoW),
		orders:    new(MockOrderRepository),
		products:  new(MockProductRepository),
		accounts:  new(MockAccountRepository),
		publisher: new(MockOrderEventPublisher),
	}

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(f.uow)

	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("ProductRepository").Return(f.products).Maybe()
	f.uow.On("AccountRepository").Return(f.accounts)

	f.handler = commands.NewUpdateOrderStatusCommandHandler(factory, f.publisher, discardLogger())
	return f
}

func actorWithRole(t *testing.T, id kernel.UUID, role account.Role) *account.Account {
	t.Helper()
	a, err := account.NewAccount(id, "test-actor", role)
	require.NoError(t, err)
	return a
}

func orderInStatus(
	t *testing.T,
	productID kernel.UUID,
	customerID *kernel.UUID,
	status order.Status,
) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(productID, "Widget", 2, mustMoney(t, "25.00"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, nil, status, mustMoney(t, "50.00"),
		"12 Elm Street, Springfield", "", "", "COD", false, time.Now(),
		[]order.LineItem{item}, nil)
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_StaffConfirms(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	productID := kernel.NewUUID()
	aggregate := orderInStatus(t, productID, nil, order.Assigned)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actorID, order.Confirmed, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()
	f.orders.On("Update", ctx, aggregate).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e ports.OrderStatusChangedEvent) bool {
		return e.From == order.Assigned && e.To == order.Confirmed
	})).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	assert.Equal(t, order.Confirmed, aggregate.Status())

	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.products.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_AssignRecordsShipper(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), nil, order.Pending)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actorID, order.Assigned, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()
	f.orders.On("Update", ctx, aggregate).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	assert.Equal(t, order.Assigned, aggregate.Status())
	require.NotNil(t, aggregate.ShipperID())
	assert.True(t, actorID.IsEqual(*aggregate.ShipperID()))
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelRestoresStock(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	p, err := product.NewProduct(productID, "Widget", mustMoney(t, "25.00"), 8, true, false)
	require.NoError(t, err)
	aggregate := orderInStatus(t, productID, &customerID, order.Pending)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), actorID, order.Cancelled, "customer changed their mind")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()
	f.products.On("GetForUpdate", ctx, []kernel.UUID{productID}).
		Return(map[kernel.UUID]*product.Product{productID: p}, nil).Once()
	f.products.On("Update", ctx, p).Return(nil).Once()
	f.orders.On("Update", ctx, aggregate).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
	assert.Equal(t, "customer changed their mind", aggregate.CancelReason())
	assert.Equal(t, 10, p.Stock(), "the two reserved units must be restored")

	f.products.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomerCancelsOwnOrder(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	p, err := product.NewProduct(productID, "Widget", mustMoney(t, "25.00"), 8, true, false)
	require.NoError(t, err)
	aggregate := orderInStatus(t, productID, &customerID, order.Pending)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), customerID, order.Cancelled, "ordered by mistake, sorry")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, customerID).Return(actorWithRole(t, customerID, account.RoleCustomer), nil).Once()
	f.products.On("GetForUpdate", ctx, []kernel.UUID{productID}).
		Return(map[kernel.UUID]*product.Product{productID: p}, nil).Once()
	f.products.On("Update", ctx, p).Return(nil).Once()
	f.orders.On("Update", ctx, aggregate).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomerCannotTouchForeignOrder(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	otherCustomerID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), &otherCustomerID, order.Pending)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), actorID, order.Cancelled, "not my order but trying")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleCustomer), nil).Once()

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), account.ErrForbidden)
	assert.Equal(t, order.Pending, aggregate.Status())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomerCannotConfirm(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	customerID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), &customerID, order.Assigned)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), customerID, order.Confirmed, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, customerID).Return(actorWithRole(t, customerID, account.RoleCustomer), nil).Once()

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), account.ErrForbidden)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), nil, order.Pending)

	// Pending -> Delivered skips the whole flow and must be rejected.
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actorID, order.Delivered, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()

	err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Pending, transitionErr.From)
	assert.Equal(t, order.Delivered, transitionErr.To)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_DoubleCancelImpossible(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), nil, order.Cancelled)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(), actorID, order.Cancelled, "cancelling a second time")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()

	require.ErrorIs(t, f.handler.Handle(ctx, cmd), order.ErrInvalidTransition)
	f.products.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything,
		"no second restoration may happen")
}

func TestUpdateOrderStatusCommandHandler_Handle_PublishFailureSwallowed(t *testing.T) {
	ctx := t.Context()
	f := newUpdateStatusFixture(t)

	actorID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), nil, order.Assigned)

	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), actorID, order.Confirmed, "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil)
	f.orders.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	f.accounts.On("Get", ctx, actorID).Return(actorWithRole(t, actorID, account.RoleStaff), nil).Once()
	f.orders.On("Update", ctx, aggregate).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd),
		"a failed event publish must not fail the committed transition")
}
