package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusstore/pkg/domain/model"
)

var _ model.CartRepository = &CartRepository{}

type CartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartRow struct {
	UserID  string `db:"user_id"`
	Items   []byte `db:"items"`
	Version int    `db:"version"`
}

func (r *CartRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *CartRepository) Find(ctx context.Context, userID string) (*model.Cart, error) {
	var row cartRow
	err := r.db.GetContext(ctx, &row, "SELECT user_id, items, version FROM carts WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find cart of %s", userID)
	}

	items, err := model.DecodeCartItems(row.Items)
	if err != nil {
		return nil, errors.Wrapf(err, "decode cart of %s", userID)
	}
	return &model.Cart{UserID: row.UserID, Items: items, Version: row.Version}, nil
}

func (r *CartRepository) Store(ctx context.Context, cart *model.Cart) error {
	items, err := model.EncodeCartItems(cart.Items)
	if err != nil {
		return err
	}

	if cart.Version == 1 {
		_, err := r.db.ExecContext(ctx, "INSERT INTO carts (user_id, items, version) VALUES (?, ?, ?)", cart.UserID, items, cart.Version)
		if isDuplicateEntry(err) {
			return model.ErrCartOptimisticLock
		}
		return errors.Wrapf(err, "insert cart of %s", cart.UserID)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE carts SET items = ?, version = ? WHERE user_id = ? AND version = ?",
		items, cart.Version, cart.UserID, cart.Version-1,
	)
	if err != nil {
		return errors.Wrapf(err, "update cart of %s", cart.UserID)
	}
	return expectOneRow(result, model.ErrCartOptimisticLock)
}
