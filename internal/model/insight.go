package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderHistory is one order of a user with its items aggregated.
type OrderHistory struct {
	OrderID    int64              `json:"order_id" db:"order_id"`
	CreateDate time.Time          `json:"create_date" db:"create_date"`
	Status     string             `json:"status" db:"status"`
	Items      []OrderHistoryItem `json:"items" db:"items"`
}

type OrderHistoryItem struct {
	ItemID          int64           `json:"item_id"`
	ItemDescription string          `json:"item_description"`
	ItemValue       decimal.Decimal `json:"item_value" swaggertype:"string" example:"19.99"`
	Quantity        int             `json:"quantity"`
}

type AverageRating struct {
	ItemID        int64               `json:"item_id"`
	AverageRating decimal.NullDecimal `json:"average_rating" swaggertype:"string" example:"4.25"`
	RatingCount   int64               `json:"rating_count"`
}

// ComplaintSummary carries either the generated Summary or, when the item has
// no comments to summarize, a Message.
type ComplaintSummary struct {
	ItemID       int64  `json:"item_id"`
	Summary      string `json:"summary,omitempty"`
	Message      string `json:"message,omitempty"`
	CommentCount int    `json:"comment_count"`
}
