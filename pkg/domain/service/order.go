package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

type OrderService interface {
	Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	History(ctx context.Context, userID string) ([]model.Order, error)
}

func NewOrderService(repo model.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

type orderService struct {
	repo model.OrderRepository
}

func (s *orderService) Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return s.repo.Find(ctx, orderID)
}

// History lists the orders of a user, newest first.
func (s *orderService) History(ctx context.Context, userID string) ([]model.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	return s.repo.ListByUser(ctx, userID)
}
