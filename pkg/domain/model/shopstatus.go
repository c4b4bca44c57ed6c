package model

import (
	"context"
	"errors"
)

const ShopStatusSlot = "shopStatus"

var ErrSlotNotFound = errors.New("slot not found")

type ShopStatus struct {
	IsOpen  bool   `json:"isOpen"`
	Message string `json:"message,omitempty"`
}

func DefaultShopStatus() ShopStatus {
	return ShopStatus{IsOpen: true}
}

// SlotStore is a string keyed store of opaque values.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
