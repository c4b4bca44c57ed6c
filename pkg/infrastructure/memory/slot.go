package memory

import (
	"context"
	"sync"

	"campusstore/pkg/domain/model"
)

var _ model.SlotStore = &SlotStore{}

type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, model.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), value...)
	return nil
}
