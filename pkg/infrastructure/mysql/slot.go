package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusstore/pkg/domain/model"
)

var _ model.SlotStore = &SlotStore{}

type SlotStore struct {
	db *sqlx.DB
}

func NewSlotStore(db *sqlx.DB) *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.GetContext(ctx, &value, "SELECT value FROM slots WHERE name = ?", key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSlotNotFound
		}
		return nil, errors.Wrapf(err, "read slot %s", key)
	}
	return value, nil
}

func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO slots (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		key, value,
	)
	return errors.Wrapf(err, "write slot %s", key)
}
