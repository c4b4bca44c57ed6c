package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// DefaultCatalog is the stock the campus store opens with.
func DefaultCatalog() []ProductInput {
	return []ProductInput{
		{Name: "Spiral Notebook - A4", Description: "100 pages, ruled", Price: decimal.NewFromInt(190), Stock: 50, Category: "Notebooks"},
		{Name: "Ballpoint Pens (Pack of 5)", Description: "Blue ink, medium point", Price: decimal.NewFromInt(130), Stock: 120, Category: "Pens"},
		{Name: "Highlighters (Set of 4)", Description: "Assorted fluorescent colors", Price: decimal.NewFromInt(225), Stock: 0, Category: "Stationery"},
		{Name: "Scientific Calculator", Description: "Advanced functions for engineering students", Price: decimal.NewFromInt(1125), Stock: 20, Category: "Electronics"},
		{Name: "Sticky Notes (Pack of 100)", Description: "3x3 inch, assorted colors", Price: decimal.NewFromInt(90), Stock: 200, Category: "Stationery"},
		{Name: "USB Flash Drive 32GB", Description: "USB 3.0 for fast data transfer", Price: decimal.NewFromInt(640), Stock: 40, Category: "Electronics"},
		{Name: "Cadbury Dairy Milk", Description: "Classic milk chocolate bar - 50g", Price: decimal.NewFromInt(40), Stock: 150, Category: "Chocolates"},
		{Name: "Nestle KitKat", Description: "4-finger chocolate wafer bar - 36.5g", Price: decimal.NewFromInt(30), Stock: 200, Category: "Chocolates"},
		{Name: "Lays Classic Salted Chips", Description: "Crispy potato chips - 52g pack", Price: decimal.NewFromInt(20), Stock: 300, Category: "Snacks"},
		{Name: "Kurkure Masala Munch", Description: "Spicy puffed corn snacks - 90g", Price: decimal.NewFromInt(20), Stock: 250, Category: "Snacks"},
		{Name: "Maaza Mango Drink", Description: "Refreshing mango fruit drink - 250ml bottle", Price: decimal.NewFromInt(25), Stock: 100, Category: "Beverages"},
		{Name: "Coca-Cola Classic", Description: "Carbonated soft drink - 300ml can", Price: decimal.NewFromInt(35), Stock: 120, Category: "Beverages"},
	}
}

// SeedCatalog fills an empty catalog and reports how many products it created.
func SeedCatalog(ctx context.Context, catalog CatalogService, products []ProductInput) (int, error) {
	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, input := range products {
		if _, err := catalog.CreateProduct(ctx, input); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}
