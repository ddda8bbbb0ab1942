package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a request for help posted by an account.
type Task struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskBid is an offer by UserID to do TaskID for Price.
type TaskBid struct {
	ID          int64           `json:"id"`
	TaskID      int64           `json:"task_id"`
	UserID      int64           `json:"user_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}
