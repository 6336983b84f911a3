package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"alloydb-shop/api/internal/model"
)

// InsightRepository runs the multi-table reads behind the derived endpoints.
type InsightRepository struct {
	db PgxExecutor
}

func NewInsightRepository(db PgxExecutor) *InsightRepository {
	return &InsightRepository{db: db}
}

const userOrderHistoryQuery = `
	SELECT
		o.order_id,
		o.create_date,
		o.status,
		json_agg(
			json_build_object(
				'item_id', i.item_id,
				'item_description', i.item_description,
				'item_value', i.item_value,
				'quantity', oi.quantity
			) ORDER BY oi.order_items_id
		) AS items
	FROM orders o
	JOIN order_items oi ON o.order_id = oi.order_id
	JOIN items i ON oi.item_id = i.item_id
	WHERE o.user_id = $1
	GROUP BY o.order_id, o.create_date, o.status
	ORDER BY o.create_date DESC`

// UserOrderHistory returns the user's orders, newest first, each with its
// items. Orders without items are not part of the history.
func (r *InsightRepository) UserOrderHistory(ctx context.Context, userID int64) ([]model.OrderHistory, error) {
	orders, err := queryAll[model.OrderHistory](ctx, r.db, userOrderHistoryQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history for user %d: %w", userID, err)
	}
	return orders, nil
}

func (r *InsightRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, "SELECT 1 FROM users WHERE user_id = $1", userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return true, nil
}

// ItemAverageRating averages every rating given to any order line of the item.
// The average is NULL when the item has no ratings.
func (r *InsightRepository) ItemAverageRating(ctx context.Context, itemID int64) (*model.AverageRating, error) {
	avg := &model.AverageRating{ItemID: itemID}
	err := r.db.QueryRow(ctx, `
		SELECT ROUND(AVG(r.value)::numeric, 2), COUNT(r.rating_id)
		FROM ratings r
		JOIN order_items oi ON r.order_items_id = oi.order_items_id
		WHERE oi.item_id = $1`, itemID).Scan(&avg.AverageRating, &avg.RatingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get average rating for item %d: %w", itemID, err)
	}
	return avg, nil
}

// ItemComments returns up to limit non-blank rating comments for the item,
// most recent rating first.
func (r *InsightRepository) ItemComments(ctx context.Context, itemID int64, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.comments
		FROM ratings r
		JOIN order_items oi ON r.order_items_id = oi.order_items_id
		WHERE oi.item_id = $1 AND r.comments IS NOT NULL AND btrim(r.comments) <> ''
		ORDER BY r.rating_id DESC
		LIMIT $2`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for item %d: %w", itemID, err)
	}
	comments, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read comments for item %d: %w", itemID, err)
	}
	return comments, nil
}
