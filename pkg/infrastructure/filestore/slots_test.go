package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusstore/pkg/domain/model"
)

func TestSlotStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.json")
	store := NewSlotStore(path)

	t.Run("Missing file has no slots", func(t *testing.T) {
		_, err := store.Get(ctx, model.ShopStatusSlot)
		assert.ErrorIs(t, err, model.ErrSlotNotFound)
	})

	t.Run("Put and get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, model.ShopStatusSlot, []byte(`{"isOpen":false,"message":"Back at 2pm"}`)))
		require.NoError(t, store.Put(ctx, "banner", []byte(`"hello"`)))

		value, err := NewSlotStore(path).Get(ctx, model.ShopStatusSlot)
		require.NoError(t, err)
		assert.JSONEq(t, `{"isOpen":false,"message":"Back at 2pm"}`, string(value))

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Reject non JSON values", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, "broken", []byte("{oops")))
	})
}

func TestSlotStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewSlotStore(path).Get(context.Background(), model.ShopStatusSlot)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrSlotNotFound)
}
