package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"campusstore/pkg/domain/model"
)

var (
	_ model.OrderRepository   = &OrderRepository{}
	_ model.AtomicOrderWriter = &OrderRepository{}
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID             uuid.UUID       `db:"id"`
	OrderNumber    string          `db:"order_number"`
	UserID         string          `db:"user_id"`
	Items          []byte          `db:"items"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	Status         string          `db:"status"`
	OrderDate      time.Time       `db:"order_date"`
	IdempotencyKey sql.NullString  `db:"idempotency_key"`
}

const orderColumns = "id, order_number, user_id, items, total_amount, status, order_date, idempotency_key"

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *OrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	result, err := r.db.ExecContext(ctx, "INSERT INTO order_numbers () VALUES ()")
	if err != nil {
		return "", errors.Wrap(err, "allocate order number")
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CAMPUS-%03d", seq), nil
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return insertOrder(ctx, r.db, order)
}

// CreateWithPrintJobs stores the order and queues its print jobs in one transaction.
func (r *OrderRepository) CreateWithPrintJobs(ctx context.Context, order *model.Order, jobs []model.PrintOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin checkout transaction")
	}
	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order); err != nil {
		return err
	}
	for i := range jobs {
		if err := insertPrintOrder(ctx, tx, &jobs[i]); err != nil {
			return err
		}
	}
	return errors.Wrapf(tx.Commit(), "commit order %s", order.ID)
}

func insertOrder(ctx context.Context, e sqlx.ExtContext, order *model.Order) error {
	items, err := model.EncodeCartItems(order.Items)
	if err != nil {
		return err
	}
	row := orderRow{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Items:       items,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		OrderDate:   order.OrderDate,
		IdempotencyKey: sql.NullString{
			String: order.IdempotencyKey,
			Valid:  order.IdempotencyKey != "",
		},
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
		VALUES (:id, :order_number, :user_id, :items, :total_amount, :status, :order_date, :idempotency_key)`
	if _, err := sqlx.NamedExecContext(ctx, e, query, row); err != nil {
		if isDuplicateEntry(err) {
			return errors.Wrapf(model.ErrDuplicateOrder, "insert order %s", order.ID)
		}
		return errors.Wrapf(err, "insert order %s", order.ID)
	}
	return nil
}

func (r *OrderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.findOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
}

func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*model.Order, error) {
	return r.findOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE user_id = ? AND idempotency_key = ?", userID, key)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var rows []orderRow
	query := "SELECT " + orderColumns + " FROM orders WHERE user_id = ? ORDER BY order_date DESC"
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrapf(err, "list orders of %s", userID)
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *OrderRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "find order")
	}
	return row.toModel()
}

func (row orderRow) toModel() (*model.Order, error) {
	items, err := model.DecodeCartItems(row.Items)
	if err != nil {
		return nil, errors.Wrapf(err, "decode items of order %s", row.ID)
	}
	status, err := model.ParseOrderStatus(row.Status)
	if err != nil {
		return nil, errors.Wrapf(err, "order %s", row.ID)
	}
	return &model.Order{
		ID:             row.ID,
		OrderNumber:    row.OrderNumber,
		UserID:         row.UserID,
		Items:          items,
		TotalAmount:    row.TotalAmount,
		Status:         status,
		OrderDate:      row.OrderDate.UTC(),
		IdempotencyKey: row.IdempotencyKey.String,
	}, nil
}
