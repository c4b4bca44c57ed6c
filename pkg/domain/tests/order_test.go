package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
)

func TestOrderHistory(t *testing.T) {
	f := setupCart(t, service.TaxPolicy{})
	orders := service.NewOrderService(f.orders)
	ctx := context.Background()

	_, err := f.service.AddProduct(ctx, "student-1", f.notebook.ID, 1)
	require.NoError(t, err)
	placed, err := f.service.PlaceOrder(ctx, "student-1", "")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		history, err := orders.History(ctx, "student-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, placed.ID, history[0].ID)
	})

	t.Run("Other user sees nothing", func(t *testing.T) {
		history, err := orders.History(ctx, "student-2")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Fail without user", func(t *testing.T) {
		_, err := orders.History(ctx, "")
		assert.ErrorIs(t, err, service.ErrUserRequired)
	})

	t.Run("Get", func(t *testing.T) {
		order, err := orders.Get(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, placed.OrderNumber, order.OrderNumber)

		_, err = orders.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
