package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItemFor(t *testing.T, p *product.Product, qty int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(p.ID(), p.Name(), qty, p.Price())
	require.NoError(t, err)
	return item
}

func TestStockCompensator_Restore(t *testing.T) {
	compensator := services.NewStockCompensator()

	t.Run("restores original quantities exactly", func(t *testing.T) {
		p := lockedProduct(t, "100.00", 7, true, false)
		items := []order.LineItem{lineItemFor(t, p, 3)}

		require.NoError(t, compensator.Restore(productSet(p), items))
		assert.Equal(t, 10, p.Stock())
	})

	t.Run("build-to-order SKU is not restored", func(t *testing.T) {
		p := lockedProduct(t, "100.00", 0, true, true)
		items := []order.LineItem{lineItemFor(t, p, 5)}

		require.NoError(t, compensator.Restore(productSet(p), items))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("missing product fails with not found", func(t *testing.T) {
		p := lockedProduct(t, "100.00", 7, true, false)
		items := []order.LineItem{lineItemFor(t, p, 3)}

		err := compensator.Restore(map[kernel.UUID]*product.Product{}, items)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("restoration works for inactive products", func(t *testing.T) {
		// A product deactivated after the order was placed must still take
		// its stock back on cancellation.
		p := lockedProduct(t, "100.00", 7, false, false)
		items := []order.LineItem{lineItemFor(t, p, 3)}

		require.NoError(t, compensator.Restore(productSet(p), items))
		assert.Equal(t, 10, p.Stock())
	})
}

func TestProductIDsOfItems(t *testing.T) {
	p := lockedProduct(t, "1.00", 10, true, false)
	q := lockedProduct(t, "1.00", 10, true, false)
	items := []order.LineItem{
		lineItemFor(t, p, 1),
		lineItemFor(t, q, 2),
		lineItemFor(t, p, 3),
	}

	ids := services.ProductIDsOfItems(items)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0].String(), ids[1].String())
}
