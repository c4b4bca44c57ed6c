package filestore

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	"campusstore/pkg/domain/model"
)

var _ model.SlotStore = &SlotStore{}

type slotsJSON struct {
	Slots map[string]json.RawMessage `json:"slots"`
}

// SlotStore keeps every slot in one JSON document on disk. Values must be valid JSON.
type SlotStore struct {
	mu       sync.Mutex
	filePath string
}

func NewSlotStore(filePath string) *SlotStore {
	return &SlotStore{filePath: filePath}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := loadSlots(s.filePath)
	if err != nil {
		return nil, err
	}
	value, ok := slots[key]
	if !ok {
		return nil, model.ErrSlotNotFound
	}
	return value, nil
}

func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return errors.Errorf("value of slot %q is not JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := loadSlots(s.filePath)
	if err != nil {
		return err
	}
	slots[key] = json.RawMessage(value)
	return saveSlots(s.filePath, slots)
}

func loadSlots(filePath string) (map[string]json.RawMessage, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, errors.Wrapf(err, "read slots file %s", filePath)
	}

	var data slotsJSON
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "parse slots file %s", filePath)
	}
	if data.Slots == nil {
		return make(map[string]json.RawMessage), nil
	}
	return data.Slots, nil
}

// saveSlots writes to a temporary file first so a crash never leaves a truncated document.
func saveSlots(filePath string, slots map[string]json.RawMessage) error {
	jsonData, err := json.MarshalIndent(slotsJSON{Slots: slots}, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0o644); err != nil {
		return errors.Wrapf(err, "write slots file %s", tmpPath)
	}
	return os.Rename(tmpPath, filePath)
}
