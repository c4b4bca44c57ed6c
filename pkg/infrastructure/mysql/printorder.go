package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusstore/pkg/domain/model"
)

var _ model.PrintOrderRepository = &PrintOrderRepository{}

type PrintOrderRepository struct {
	db *sqlx.DB
}

func NewPrintOrderRepository(db *sqlx.DB) *PrintOrderRepository {
	return &PrintOrderRepository{db: db}
}

const printOrderColumns = "id, user_id, file_name, copies, paper_size, color, two_sided, notes, status, order_date, estimated_price, version"

func (r *PrintOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *PrintOrderRepository) Create(ctx context.Context, order *model.PrintOrder) error {
	return insertPrintOrder(ctx, r.db, order)
}

func insertPrintOrder(ctx context.Context, e sqlx.ExtContext, order *model.PrintOrder) error {
	const query = `INSERT INTO print_orders (` + printOrderColumns + `)
		VALUES (:id, :user_id, :file_name, :copies, :paper_size, :color, :two_sided, :notes, :status, :order_date, :estimated_price, :version)`
	if _, err := sqlx.NamedExecContext(ctx, e, query, order); err != nil {
		if isDuplicateEntry(err) {
			return errors.Wrapf(model.ErrDuplicatePrintOrder, "insert print order %s", order.ID)
		}
		return errors.Wrapf(err, "insert print order %s", order.ID)
	}
	return nil
}

func (r *PrintOrderRepository) Update(ctx context.Context, order *model.PrintOrder) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE print_orders SET status = ?, version = ? WHERE id = ? AND version = ?",
		order.Status, order.Version, order.ID, order.Version-1,
	)
	if err != nil {
		return errors.Wrapf(err, "update print order %s", order.ID)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Find(ctx, order.ID); err != nil {
			return err
		}
		return model.ErrPrintOptimisticLock
	}
	return nil
}

func (r *PrintOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM print_orders WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete print order %s", id)
	}
	return expectOneRow(result, model.ErrPrintOrderNotFound)
}

func (r *PrintOrderRepository) Find(ctx context.Context, id uuid.UUID) (*model.PrintOrder, error) {
	var order model.PrintOrder
	if err := r.db.GetContext(ctx, &order, "SELECT "+printOrderColumns+" FROM print_orders WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPrintOrderNotFound
		}
		return nil, errors.Wrapf(err, "find print order %s", id)
	}
	order.OrderDate = order.OrderDate.UTC()
	return &order, nil
}

func (r *PrintOrderRepository) List(ctx context.Context, filter model.PrintOrderFilter) ([]model.PrintOrder, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}

	query := "SELECT " + printOrderColumns + " FROM print_orders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_date DESC"

	orders := make([]model.PrintOrder, 0)
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, errors.Wrap(err, "list print orders")
	}
	for i := range orders {
		orders[i].OrderDate = orders[i].OrderDate.UTC()
	}
	return orders, nil
}
