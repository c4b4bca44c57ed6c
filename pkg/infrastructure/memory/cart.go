package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

var _ model.CartRepository = &CartRepository{}

type CartRepository struct {
	mu    sync.Mutex
	store map[string]*model.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{store: make(map[string]*model.Cart)}
}

func (r *CartRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *CartRepository) Find(_ context.Context, userID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.store[userID]
	if !ok {
		return &model.Cart{UserID: userID}, nil
	}
	return cart.Clone(), nil
}

func (r *CartRepository) Store(_ context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int
	if existing, ok := r.store[cart.UserID]; ok {
		current = existing.Version
	}
	if current != cart.Version-1 {
		return model.ErrCartOptimisticLock
	}
	r.store[cart.UserID] = cart.Clone()
	return nil
}
