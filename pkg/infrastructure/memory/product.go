package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

var _ model.ProductRepository = &ProductRepository{}

// ProductRepository keeps products in insertion order, which is the order the shop lists them in.
type ProductRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	store map[uuid.UUID]model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{store: make(map[uuid.UUID]model.Product)}
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *ProductRepository) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[product.ID]; exists {
		return ErrAlreadyExists
	}
	r.store[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

func (r *ProductRepository) Update(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	r.store[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(r.store, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

func (r *ProductRepository) List(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.store[id])
	}
	return products, nil
}
