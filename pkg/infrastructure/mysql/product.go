package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusstore/pkg/domain/model"
)

var _ model.ProductRepository = &ProductRepository{}

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `INSERT INTO products (id, name, description, price, stock, category, image_url)
		VALUES (:id, :name, :description, :price, :stock, :category, :image_url)`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return errors.Wrapf(err, "insert product %s", product.ID)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products SET name = :name, description = :description, price = :price,
		stock = :stock, category = :category, image_url = :image_url WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return errors.Wrapf(err, "update product %s", product.ID)
	}
	return expectOneRow(result, model.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete product %s", id)
	}
	return expectOneRow(result, model.ErrProductNotFound)
}

func (r *ProductRepository) Find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	const query = "SELECT id, name, description, price, stock, category, image_url FROM products WHERE id = ?"
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "find product %s", id)
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0)
	const query = "SELECT id, name, description, price, stock, category, image_url FROM products ORDER BY seq"
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func expectOneRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
