package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/model"
)

type ShopStatusService interface {
	// Get never fails: a missing or unreadable slot yields the default status.
	Get(ctx context.Context) model.ShopStatus
	Set(ctx context.Context, status model.ShopStatus) error
}

func NewShopStatusService(store model.SlotStore, dispatcher EventDispatcher) ShopStatusService {
	return &shopStatusService{store: store, dispatcher: dispatcher}
}

type shopStatusService struct {
	store      model.SlotStore
	dispatcher EventDispatcher
}

func (s *shopStatusService) Get(ctx context.Context) model.ShopStatus {
	raw, err := s.store.Get(ctx, model.ShopStatusSlot)
	if err != nil {
		if !errors.Is(err, model.ErrSlotNotFound) {
			log.WithError(err).Warn("failed to read shop status, using default")
		}
		return model.DefaultShopStatus()
	}

	var status model.ShopStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		log.WithError(err).Warn("stored shop status is malformed, using default")
		return model.DefaultShopStatus()
	}
	return status
}

func (s *shopStatusService) Set(ctx context.Context, status model.ShopStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, model.ShopStatusSlot, raw); err != nil {
		return errors.Wrap(err, "save shop status")
	}

	_ = s.dispatcher.Dispatch(model.ShopStatusChanged{IsOpen: status.IsOpen, Message: status.Message})
	return nil
}
