package repository

import (
	"context"
	"errors"
	"fmt"

	"alloydb-shop/api/internal/model"
)

const orderColumns = "order_id, create_date, status, user_id"

var ErrMissingCreateDate = errors.New("create_date is required on update")

type OrderRepository struct {
	db PgxExecutor
}

func NewOrderRepository(db PgxExecutor) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	orders, err := queryAll[model.Order](ctx, r.db,
		"SELECT "+orderColumns+" FROM orders ORDER BY order_id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := queryOne[model.Order](ctx, r.db,
		"SELECT "+orderColumns+" FROM orders WHERE order_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return order, nil
}

// Create stamps create_date with the current time when the input omits it.
func (r *OrderRepository) Create(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	order, err := queryOne[model.Order](ctx, r.db,
		"INSERT INTO orders (create_date, status, user_id) VALUES (COALESCE($1, NOW()), $2, $3) RETURNING "+orderColumns,
		in.CreateDate, in.Status, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// Update overwrites every column of the order. A missing create_date is
// rejected rather than kept.
func (r *OrderRepository) Update(ctx context.Context, id int64, in model.OrderInput) (*model.Order, error) {
	if in.CreateDate == nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, ErrMissingCreateDate)
	}
	order, err := queryOne[model.Order](ctx, r.db,
		"UPDATE orders SET create_date = $1, status = $2, user_id = $3 WHERE order_id = $4 RETURNING "+orderColumns,
		in.CreateDate, in.Status, in.UserID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "orders", "order_id", id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}
