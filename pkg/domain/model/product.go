package model

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductOutOfStock = errors.New("product is out of stock")
)

// StockLevel mirrors the badge the inventory table shows next to each product.
type StockLevel string

const (
	InStock    StockLevel = "in_stock"
	LowStock   StockLevel = "low"
	OutOfStock StockLevel = "out_of_stock"
)

const lowStockThreshold = 20

type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Category    string          `json:"category,omitempty" db:"category"`
	ImageURL    string          `json:"imageUrl,omitempty" db:"image_url"`
}

func (p Product) StockLevel() StockLevel {
	switch {
	case p.Stock > lowStockThreshold:
		return InStock
	case p.Stock > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

func (p Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("product name is required")
	}
	if p.Price.IsNegative() {
		return NewValidationError("product price cannot be negative")
	}
	if p.Stock < 0 {
		return NewValidationError("product stock cannot be negative")
	}
	return nil
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
