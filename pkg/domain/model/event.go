package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductCreated struct {
	ProductID uuid.UUID
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID uuid.UUID
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductRemoved struct {
	ProductID uuid.UUID
}

func (e ProductRemoved) Type() string { return "ProductRemoved" }

type ItemAddedToCart struct {
	UserID   string
	ItemID   uuid.UUID
	ItemType CartItemType
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type ItemRemovedFromCart struct {
	UserID string
	ItemID uuid.UUID
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartItemQuantityChanged struct {
	UserID      string
	ItemID      uuid.UUID
	OldQuantity int
	NewQuantity int
}

func (e CartItemQuantityChanged) Type() string { return "CartItemQuantityChanged" }

type OrderPlaced struct {
	OrderID     uuid.UUID
	OrderNumber string
	UserID      string
	TotalAmount decimal.Decimal
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type PrintOrderQueued struct {
	PrintOrderID uuid.UUID
	UserID       string
	FileName     string
}

func (e PrintOrderQueued) Type() string { return "PrintOrderQueued" }

type PrintOrderStatusChanged struct {
	PrintOrderID uuid.UUID
	From         PrintOrderStatus
	To           PrintOrderStatus
}

func (e PrintOrderStatusChanged) Type() string { return "PrintOrderStatusChanged" }

type ShopStatusChanged struct {
	IsOpen  bool
	Message string
}

func (e ShopStatusChanged) Type() string { return "ShopStatusChanged" }
