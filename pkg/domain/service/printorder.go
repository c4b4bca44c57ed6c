package service

import (
	"context"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

type PrintOrderService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.PrintOrder, error)
	List(ctx context.Context, filter model.PrintOrderFilter) ([]model.PrintOrder, error)
	// TransitionStatus moves the order to status. A non-nil expectedVersion must match the stored version.
	TransitionStatus(ctx context.Context, id uuid.UUID, status model.PrintOrderStatus, expectedVersion *int) (*model.PrintOrder, error)
}

func NewPrintOrderService(repo model.PrintOrderRepository, dispatcher EventDispatcher) PrintOrderService {
	return &printOrderService{repo: repo, dispatcher: dispatcher}
}

type printOrderService struct {
	repo       model.PrintOrderRepository
	dispatcher EventDispatcher
}

func (s *printOrderService) Get(ctx context.Context, id uuid.UUID) (*model.PrintOrder, error) {
	return s.repo.Find(ctx, id)
}

func (s *printOrderService) List(ctx context.Context, filter model.PrintOrderFilter) ([]model.PrintOrder, error) {
	return s.repo.List(ctx, filter)
}

func (s *printOrderService) TransitionStatus(ctx context.Context, id uuid.UUID, status model.PrintOrderStatus, expectedVersion *int) (*model.PrintOrder, error) {
	order, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if expectedVersion != nil && *expectedVersion != order.Version {
		return nil, model.ErrPrintOptimisticLock
	}

	from := order.Status
	if err := order.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.PrintOrderStatusChanged{PrintOrderID: id, From: from, To: status})
	return order, nil
}
