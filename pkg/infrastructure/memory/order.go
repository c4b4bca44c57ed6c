package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

var _ model.OrderRepository = &OrderRepository{}

type OrderRepository struct {
	mu       sync.RWMutex
	sequence int
	store    map[uuid.UUID]*model.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *OrderRepository) NextOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	return fmt.Sprintf("CAMPUS-%03d", r.sequence), nil
}

func (r *OrderRepository) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[order.ID]; exists {
		return ErrAlreadyExists
	}
	if order.IdempotencyKey != "" && r.findByKey(order.UserID, order.IdempotencyKey) != nil {
		return model.ErrDuplicateOrder
	}
	stored := *order
	r.store[order.ID] = &stored
	return nil
}

func (r *OrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.store[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *OrderRepository) FindByIdempotencyKey(_ context.Context, userID, key string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order := r.findByKey(userID, key)
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.Order, 0)
	for _, order := range r.store {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (r *OrderRepository) findByKey(userID, key string) *model.Order {
	for _, order := range r.store {
		if order.UserID == userID && order.IdempotencyKey == key {
			return order
		}
	}
	return nil
}
