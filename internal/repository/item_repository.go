package repository

import (
	"context"
	"fmt"

	"alloydb-shop/api/internal/model"
)

const itemColumns = "item_id, item_description, item_value"

type ItemRepository struct {
	db PgxExecutor
}

func NewItemRepository(db PgxExecutor) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]model.Item, error) {
	items, err := queryAll[model.Item](ctx, r.db,
		"SELECT "+itemColumns+" FROM items ORDER BY item_id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := queryOne[model.Item](ctx, r.db,
		"SELECT "+itemColumns+" FROM items WHERE item_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

func (r *ItemRepository) Create(ctx context.Context, in model.ItemInput) (*model.Item, error) {
	item, err := queryOne[model.Item](ctx, r.db,
		"INSERT INTO items (item_description, item_value) VALUES ($1, $2) RETURNING "+itemColumns,
		in.Description, in.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, in model.ItemInput) (*model.Item, error) {
	item, err := queryOne[model.Item](ctx, r.db,
		"UPDATE items SET item_description = $1, item_value = $2 WHERE item_id = $3 RETURNING "+itemColumns,
		in.Description, in.Value, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return item, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "items", "item_id", id); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}
