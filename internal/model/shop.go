package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID     int64   `json:"user_id" db:"user_id"`
	Name   string  `json:"name" db:"name"`
	Email  string  `json:"email" db:"email"`
	Status *string `json:"status" db:"status"`
}

type UserInput struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"required,email"`
	Status *string `json:"status"`
}

type Item struct {
	ID          int64           `json:"item_id" db:"item_id"`
	Description string          `json:"item_description" db:"item_description"`
	Value       decimal.Decimal `json:"item_value" db:"item_value"`
}

type ItemInput struct {
	Description string           `json:"item_description" validate:"required"`
	Value       *decimal.Decimal `json:"item_value" validate:"required"`
}

type Order struct {
	ID         int64     `json:"order_id" db:"order_id"`
	CreateDate time.Time `json:"create_date" db:"create_date"`
	Status     string    `json:"status" db:"status"`
	UserID     int64     `json:"user_id" db:"user_id"`
}

// OrderInput leaves CreateDate optional on create, where the store defaults
// it to the current time.
type OrderInput struct {
	CreateDate *time.Time `json:"create_date"`
	Status     string     `json:"status" validate:"required"`
	UserID     int64      `json:"user_id" validate:"required"`
}

// OrderReplaceInput is the rule set for a full-replace update: every column
// is written, so create_date must be supplied.
type OrderReplaceInput struct {
	CreateDate *time.Time `json:"create_date" validate:"required"`
	Status     string     `json:"status" validate:"required"`
	UserID     int64      `json:"user_id" validate:"required"`
}

func (in OrderInput) ForReplace() any {
	return OrderReplaceInput(in)
}

type OrderItem struct {
	ID       int64 `json:"order_items_id" db:"order_items_id"`
	OrderID  int64 `json:"order_id" db:"order_id"`
	ItemID   int64 `json:"item_id" db:"item_id"`
	Quantity int   `json:"quantity" db:"quantity"`
}

type OrderItemInput struct {
	OrderID  int64 `json:"order_id" validate:"required"`
	ItemID   int64 `json:"item_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"min=1"`
}

type Rating struct {
	ID           int64   `json:"rating_id" db:"rating_id"`
	Value        int     `json:"value" db:"value"`
	Comments     *string `json:"comments" db:"comments"`
	UserID       int64   `json:"user_id" db:"user_id"`
	OrderItemsID int64   `json:"order_items_id" db:"order_items_id"`
}

type RatingInput struct {
	Value        int     `json:"value" validate:"min=1,max=5"`
	Comments     *string `json:"comments"`
	UserID       int64   `json:"user_id" validate:"required"`
	OrderItemsID int64   `json:"order_items_id" validate:"required"`
}
