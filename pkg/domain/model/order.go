package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrUnknownOrderStatus = errors.New("unknown order status")
	ErrDuplicateOrder     = errors.New("order with this idempotency key already exists")
)

// OrderStatus has no transition logic. Orders only carry it.
type OrderStatus string

const (
	Pending    OrderStatus = "Pending"
	Processing OrderStatus = "Processing"
	Shipped    OrderStatus = "Shipped"
	Delivered  OrderStatus = "Delivered"
	Completed  OrderStatus = "Completed"
	Cancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{Pending, Processing, Shipped, Delivered, Completed, Cancelled}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", ErrUnknownOrderStatus
}

func (s OrderStatus) String() string { return string(s) }

type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	UserID         string
	Items          []CartItem
	TotalAmount    decimal.Decimal
	Status         OrderStatus
	OrderDate      time.Time
	IdempotencyKey string
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	// NextOrderNumber hands out the human readable CAMPUS-NNN numbers.
	NextOrderNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, order *Order) error
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// AtomicOrderWriter is implemented by order stores that can queue the print jobs of an order in the
// same transaction as the order itself.
type AtomicOrderWriter interface {
	CreateWithPrintJobs(ctx context.Context, order *Order, jobs []PrintOrder) error
}
