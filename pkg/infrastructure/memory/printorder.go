package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

var _ model.PrintOrderRepository = &PrintOrderRepository{}

type PrintOrderRepository struct {
	mu    sync.RWMutex
	store map[uuid.UUID]*model.PrintOrder
}

func NewPrintOrderRepository() *PrintOrderRepository {
	return &PrintOrderRepository{store: make(map[uuid.UUID]*model.PrintOrder)}
}

func (r *PrintOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *PrintOrderRepository) Create(_ context.Context, order *model.PrintOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[order.ID]; exists {
		return model.ErrDuplicatePrintOrder
	}
	stored := *order
	r.store[order.ID] = &stored
	return nil
}

func (r *PrintOrderRepository) Update(_ context.Context, order *model.PrintOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[order.ID]
	if !ok {
		return model.ErrPrintOrderNotFound
	}
	if existing.Version != order.Version-1 {
		return model.ErrPrintOptimisticLock
	}
	updated := *order
	r.store[order.ID] = &updated
	return nil
}

func (r *PrintOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return model.ErrPrintOrderNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *PrintOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.PrintOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.store[id]
	if !ok {
		return nil, model.ErrPrintOrderNotFound
	}
	clone := *order
	return &clone, nil
}

// List returns the matching orders, newest first.
func (r *PrintOrderRepository) List(_ context.Context, filter model.PrintOrderFilter) ([]model.PrintOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.PrintOrder, 0)
	for _, order := range r.store {
		if filter.Match(*order) {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}
