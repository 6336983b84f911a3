package repository

import (
	"context"
	"fmt"

	"alloydb-shop/api/internal/model"
)

const ratingColumns = "rating_id, value, comments, user_id, order_items_id"

type RatingRepository struct {
	db PgxExecutor
}

func NewRatingRepository(db PgxExecutor) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) List(ctx context.Context, limit, offset int) ([]model.Rating, error) {
	ratings, err := queryAll[model.Rating](ctx, r.db,
		"SELECT "+ratingColumns+" FROM ratings ORDER BY rating_id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

func (r *RatingRepository) Get(ctx context.Context, id int64) (*model.Rating, error) {
	rating, err := queryOne[model.Rating](ctx, r.db,
		"SELECT "+ratingColumns+" FROM ratings WHERE rating_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating %d: %w", id, err)
	}
	return rating, nil
}

func (r *RatingRepository) Create(ctx context.Context, in model.RatingInput) (*model.Rating, error) {
	rating, err := queryOne[model.Rating](ctx, r.db,
		"INSERT INTO ratings (value, comments, user_id, order_items_id) VALUES ($1, $2, $3, $4) RETURNING "+ratingColumns,
		in.Value, in.Comments, in.UserID, in.OrderItemsID)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}
	return rating, nil
}

func (r *RatingRepository) Update(ctx context.Context, id int64, in model.RatingInput) (*model.Rating, error) {
	rating, err := queryOne[model.Rating](ctx, r.db,
		"UPDATE ratings SET value = $1, comments = $2, user_id = $3, order_items_id = $4 WHERE rating_id = $5 RETURNING "+ratingColumns,
		in.Value, in.Comments, in.UserID, in.OrderItemsID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update rating %d: %w", id, err)
	}
	return rating, nil
}

func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "ratings", "rating_id", id); err != nil {
		return fmt.Errorf("failed to delete rating %d: %w", id, err)
	}
	return nil
}
