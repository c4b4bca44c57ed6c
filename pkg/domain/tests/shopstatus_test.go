package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
)

func setupShopStatus(t *testing.T) (service.ShopStatusService, *mockSlotStore, *mockEventDispatcher) {
	store := &mockSlotStore{slots: make(map[string][]byte)}
	dispatcher := &mockEventDispatcher{}
	return service.NewShopStatusService(store, dispatcher), store, dispatcher
}

func TestShopStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Open by default", func(t *testing.T) {
		shopStatus, _, _ := setupShopStatus(t)
		assert.Equal(t, model.ShopStatus{IsOpen: true}, shopStatus.Get(ctx))
	})

	t.Run("Round trip", func(t *testing.T) {
		shopStatus, store, dispatcher := setupShopStatus(t)
		closed := model.ShopStatus{IsOpen: false, Message: "Closed for inventory"}

		require.NoError(t, shopStatus.Set(ctx, closed))

		assert.Equal(t, closed, shopStatus.Get(ctx))
		assert.JSONEq(t, `{"isOpen":false,"message":"Closed for inventory"}`, string(store.slots[model.ShopStatusSlot]))
		require.Len(t, dispatcher.events, 1)
		assert.Equal(t, "ShopStatusChanged", dispatcher.events[0].Type())
	})

	t.Run("Malformed value falls back to default", func(t *testing.T) {
		shopStatus, store, _ := setupShopStatus(t)
		store.slots[model.ShopStatusSlot] = []byte("{not json")

		assert.Equal(t, model.DefaultShopStatus(), shopStatus.Get(ctx))
	})

	t.Run("Unreadable store falls back to default", func(t *testing.T) {
		shopStatus, store, _ := setupShopStatus(t)
		store.getErr = errStorageDown

		assert.Equal(t, model.DefaultShopStatus(), shopStatus.Get(ctx))
	})
}
