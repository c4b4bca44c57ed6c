package tests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
)

type mockProductRepository struct {
	order []uuid.UUID
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockProductRepository) Create(_ context.Context, p *model.Product) error {
	clone := *p
	m.store[p.ID] = &clone
	m.order = append(m.order, p.ID)
	return nil
}
func (m *mockProductRepository) Update(_ context.Context, p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}
func (m *mockProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
func (m *mockProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}
func (m *mockProductRepository) List(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(m.order))
	for _, id := range m.order {
		products = append(products, *m.store[id])
	}
	return products, nil
}

type mockCartRepository struct {
	store map[string]*model.Cart
}

func (m *mockCartRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockCartRepository) Find(_ context.Context, userID string) (*model.Cart, error) {
	if cart, ok := m.store[userID]; ok {
		return cart.Clone(), nil
	}
	return &model.Cart{UserID: userID}, nil
}
func (m *mockCartRepository) Store(_ context.Context, cart *model.Cart) error {
	var current int
	if existing, ok := m.store[cart.UserID]; ok {
		current = existing.Version
	}
	if current != cart.Version-1 {
		return model.ErrCartOptimisticLock
	}
	m.store[cart.UserID] = cart.Clone()
	return nil
}

type mockOrderRepository struct {
	sequence int
	store    map[uuid.UUID]*model.Order
	// failCreates is the number of upcoming Create calls that fail with errStorageDown.
	failCreates int
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockOrderRepository) NextOrderNumber(_ context.Context) (string, error) {
	m.sequence++
	return fmt.Sprintf("CAMPUS-%03d", m.sequence), nil
}
func (m *mockOrderRepository) Create(_ context.Context, order *model.Order) error {
	if m.failCreates > 0 {
		m.failCreates--
		return errStorageDown
	}
	clone := *order
	m.store[order.ID] = &clone
	return nil
}
func (m *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if order, ok := m.store[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, model.ErrOrderNotFound
}
func (m *mockOrderRepository) FindByIdempotencyKey(_ context.Context, userID, key string) (*model.Order, error) {
	for _, order := range m.store {
		if order.UserID == userID && order.IdempotencyKey == key {
			clone := *order
			return &clone, nil
		}
	}
	return nil, model.ErrOrderNotFound
}
func (m *mockOrderRepository) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	for _, order := range m.store {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

type mockPrintOrderRepository struct {
	store map[uuid.UUID]*model.PrintOrder
}

func (m *mockPrintOrderRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockPrintOrderRepository) Create(_ context.Context, order *model.PrintOrder) error {
	if _, ok := m.store[order.ID]; ok {
		return model.ErrDuplicatePrintOrder
	}
	clone := *order
	m.store[order.ID] = &clone
	return nil
}
func (m *mockPrintOrderRepository) Update(_ context.Context, order *model.PrintOrder) error {
	existing, ok := m.store[order.ID]
	if !ok {
		return model.ErrPrintOrderNotFound
	}
	if existing.Version != order.Version-1 {
		return model.ErrPrintOptimisticLock
	}
	clone := *order
	m.store[order.ID] = &clone
	return nil
}
func (m *mockPrintOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.PrintOrder, error) {
	if order, ok := m.store[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, model.ErrPrintOrderNotFound
}
func (m *mockPrintOrderRepository) List(_ context.Context, filter model.PrintOrderFilter) ([]model.PrintOrder, error) {
	orders := make([]model.PrintOrder, 0)
	for _, order := range m.store {
		if filter.Match(*order) {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockPrintOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrPrintOrderNotFound
	}
	delete(m.store, id)
	return nil
}

// mockAtomicOrderRepository writes the order and its print jobs in one step, like a transactional store.
type mockAtomicOrderRepository struct {
	*mockOrderRepository
	printOrders *mockPrintOrderRepository
}

func (m *mockAtomicOrderRepository) CreateWithPrintJobs(ctx context.Context, order *model.Order, jobs []model.PrintOrder) error {
	if err := m.Create(ctx, order); err != nil {
		return err
	}
	for i := range jobs {
		if err := m.printOrders.Create(ctx, &jobs[i]); err != nil {
			return err
		}
	}
	return nil
}

type mockSlotStore struct {
	slots  map[string][]byte
	getErr error
}

func (m *mockSlotStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	value, ok := m.slots[key]
	if !ok {
		return nil, model.ErrSlotNotFound
	}
	return value, nil
}
func (m *mockSlotStore) Put(_ context.Context, key string, value []byte) error {
	m.slots[key] = value
	return nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}
func (m *mockEventDispatcher) Reset() {
	m.events = nil
}

var errStorageDown = errors.New("storage is down")
