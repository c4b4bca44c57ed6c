package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartIsEmpty           = errors.New("cannot place an order from an empty cart")
	ErrQuantityNotAdjustable = errors.New("quantity of a print job cannot be changed")
	ErrCartOptimisticLock    = errors.New("cart has been modified by another request")
	ErrUnknownCartItemType   = errors.New("unknown cart item type")
)

type CartItemType string

const (
	ProductItem CartItemType = "product"
	PrintItem   CartItemType = "print"
)

// CartItem is either a *ProductCartItem or a *PrintCartItem. The set is closed by the unexported method.
type CartItem interface {
	ItemID() uuid.UUID
	ItemType() CartItemType
	ItemQuantity() int
	cartItem()
}

type ProductCartItem struct {
	ID       uuid.UUID
	Quantity int
	Product  Product
}

func (i *ProductCartItem) ItemID() uuid.UUID      { return i.ID }
func (i *ProductCartItem) ItemType() CartItemType { return ProductItem }
func (i *ProductCartItem) ItemQuantity() int      { return i.Quantity }
func (*ProductCartItem) cartItem()                {}

// PrintCartItem always counts as one job. Copies live on the job itself.
type PrintCartItem struct {
	ID       uuid.UUID
	PrintJob PrintOrder
}

func (i *PrintCartItem) ItemID() uuid.UUID      { return i.ID }
func (i *PrintCartItem) ItemType() CartItemType { return PrintItem }
func (i *PrintCartItem) ItemQuantity() int      { return 1 }
func (*PrintCartItem) cartItem()                {}

// LineTotal computes an item's cost from its stored fields only.
func LineTotal(item CartItem) decimal.Decimal {
	switch it := item.(type) {
	case *ProductCartItem:
		return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
	case *PrintCartItem:
		if it.PrintJob.EstimatedPrice == nil {
			return decimal.Zero
		}
		return *it.PrintJob.EstimatedPrice
	default:
		panic(fmt.Sprintf("unhandled cart item %T", item))
	}
}

func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// DisplayName is what order history shows for the line.
func DisplayName(item CartItem) string {
	switch it := item.(type) {
	case *ProductCartItem:
		return it.Product.Name
	case *PrintCartItem:
		return it.PrintJob.FileName + " (Print)"
	default:
		panic(fmt.Sprintf("unhandled cart item %T", item))
	}
}

type Cart struct {
	UserID  string
	Items   []CartItem
	Version int
}

func (c *Cart) IndexOf(itemID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ItemID() == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) ProductItem(productID uuid.UUID) *ProductCartItem {
	for _, item := range c.Items {
		if it, ok := item.(*ProductCartItem); ok && it.Product.ID == productID {
			return it
		}
	}
	return nil
}

func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.Items)
}

// Clone deep-copies the items so that the copy can be mutated freely.
func (c *Cart) Clone() *Cart {
	clone := &Cart{UserID: c.UserID, Version: c.Version, Items: make([]CartItem, 0, len(c.Items))}
	for _, item := range c.Items {
		switch it := item.(type) {
		case *ProductCartItem:
			copied := *it
			clone.Items = append(clone.Items, &copied)
		case *PrintCartItem:
			copied := *it
			clone.Items = append(clone.Items, &copied)
		default:
			panic(fmt.Sprintf("unhandled cart item %T", item))
		}
	}
	return clone
}

type CartRepository interface {
	NextID() (uuid.UUID, error)
	// Find returns an empty cart with version 0 when the user has none yet.
	Find(ctx context.Context, userID string) (*Cart, error)
	// Store saves cart when the persisted version equals cart.Version-1.
	Store(ctx context.Context, cart *Cart) error
}

// cartItemRecord is the tagged JSON form shared by the API and the storage layers.
type cartItemRecord struct {
	Type     CartItemType `json:"type"`
	ID       uuid.UUID    `json:"id"`
	Quantity int          `json:"quantity"`
	Product  *Product     `json:"product,omitempty"`
	PrintJob *PrintOrder  `json:"printJob,omitempty"`
}

func (i *ProductCartItem) MarshalJSON() ([]byte, error) {
	product := i.Product
	return json.Marshal(cartItemRecord{Type: ProductItem, ID: i.ID, Quantity: i.Quantity, Product: &product})
}

func (i *PrintCartItem) MarshalJSON() ([]byte, error) {
	job := i.PrintJob
	return json.Marshal(cartItemRecord{Type: PrintItem, ID: i.ID, Quantity: 1, PrintJob: &job})
}

func EncodeCartItems(items []CartItem) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}

func DecodeCartItems(data []byte) ([]CartItem, error) {
	var records []cartItemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	items := make([]CartItem, 0, len(records))
	for _, record := range records {
		switch record.Type {
		case ProductItem:
			if record.Product == nil {
				return nil, fmt.Errorf("product cart item %s has no product", record.ID)
			}
			items = append(items, &ProductCartItem{ID: record.ID, Quantity: record.Quantity, Product: *record.Product})
		case PrintItem:
			if record.PrintJob == nil {
				return nil, fmt.Errorf("print cart item %s has no print job", record.ID)
			}
			items = append(items, &PrintCartItem{ID: record.ID, PrintJob: *record.PrintJob})
		default:
			return nil, ErrUnknownCartItemType
		}
	}
	return items, nil
}
