package repository

import (
	"context"
	"fmt"

	"alloydb-shop/api/internal/model"
)

const orderItemColumns = "order_items_id, order_id, item_id, quantity"

type OrderItemRepository struct {
	db PgxExecutor
}

func NewOrderItemRepository(db PgxExecutor) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) List(ctx context.Context, limit, offset int) ([]model.OrderItem, error) {
	items, err := queryAll[model.OrderItem](ctx, r.db,
		"SELECT "+orderItemColumns+" FROM order_items ORDER BY order_items_id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

func (r *OrderItemRepository) Get(ctx context.Context, id int64) (*model.OrderItem, error) {
	item, err := queryOne[model.OrderItem](ctx, r.db,
		"SELECT "+orderItemColumns+" FROM order_items WHERE order_items_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order item %d: %w", id, err)
	}
	return item, nil
}

func (r *OrderItemRepository) Create(ctx context.Context, in model.OrderItemInput) (*model.OrderItem, error) {
	item, err := queryOne[model.OrderItem](ctx, r.db,
		"INSERT INTO order_items (order_id, item_id, quantity) VALUES ($1, $2, $3) RETURNING "+orderItemColumns,
		in.OrderID, in.ItemID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}
	return item, nil
}

func (r *OrderItemRepository) Update(ctx context.Context, id int64, in model.OrderItemInput) (*model.OrderItem, error) {
	item, err := queryOne[model.OrderItem](ctx, r.db,
		"UPDATE order_items SET order_id = $1, item_id = $2, quantity = $3 WHERE order_items_id = $4 RETURNING "+orderItemColumns,
		in.OrderID, in.ItemID, in.Quantity, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order item %d: %w", id, err)
	}
	return item, nil
}

func (r *OrderItemRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "order_items", "order_items_id", id); err != nil {
		return fmt.Errorf("failed to delete order item %d: %w", id, err)
	}
	return nil
}
