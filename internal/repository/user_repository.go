package repository

import (
	"context"
	"fmt"

	"alloydb-shop/api/internal/model"
)

const userColumns = "user_id, name, email, status"

type UserRepository struct {
	db PgxExecutor
}

func NewUserRepository(db PgxExecutor) *UserRepository {
	return &UserRepository{db: db}
}

// List returns users ordered by id
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := queryAll[model.User](ctx, r.db,
		"SELECT "+userColumns+" FROM users ORDER BY user_id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := queryOne[model.User](ctx, r.db,
		"SELECT "+userColumns+" FROM users WHERE user_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	user, err := queryOne[model.User](ctx, r.db,
		"INSERT INTO users (name, email, status) VALUES ($1, $2, $3) RETURNING "+userColumns,
		in.Name, in.Email, in.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update overwrites every column of the user
func (r *UserRepository) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	user, err := queryOne[model.User](ctx, r.db,
		"UPDATE users SET name = $1, email = $2, status = $3 WHERE user_id = $4 RETURNING "+userColumns,
		in.Name, in.Email, in.Status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db, "users", "user_id", id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
