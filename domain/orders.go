package domain

import (
	"strings"
	"time"
)

const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusRefunded = "refunded"
	OrderStatusCanceled = "canceled"
)

// CREATE TABLE public.orders (
//     id                 BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     external_order_id  TEXT UNIQUE NOT NULL,
//     email              TEXT NOT NULL,
//     user_id            UUID REFERENCES users(id),
//     course_id          BIGINT REFERENCES courses(id),
//     status             TEXT NOT NULL,
//     amount             NUMERIC,
//     currency           TEXT,
//     created_at         TIMESTAMPTZ DEFAULT NOW(),
//     updated_at         TIMESTAMPTZ DEFAULT NOW()
// );

type Order struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalOrderID string    `gorm:"column:external_order_id;uniqueIndex;not null" json:"external_order_id"`
	Email           string    `gorm:"column:email;index;not null" json:"email"`
	UserID          *string   `gorm:"column:user_id;index" json:"user_id"`
	CourseID        uint64    `gorm:"column:course_id;index" json:"course_id"`
	Status          string    `gorm:"column:status;not null;default:pending" json:"status"`
	Amount          float64   `gorm:"column:amount;type:numeric" json:"amount"`
	Currency        string    `gorm:"column:currency" json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// NormalizeOrderStatus folds the legacy payment platform's payment states
// into the order statuses the portal understands.
func NormalizeOrderStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid", "successful", "success", "completed", "complete":
		return OrderStatusPaid
	case "refunded", "refund", "chargeback", "partially_refunded":
		return OrderStatusRefunded
	case "canceled", "cancelled", "failed", "expired":
		return OrderStatusCanceled
	default:
		return OrderStatusPending
	}
}

// MergeOrderStatus returns the status to store when incoming arrives for a
// payment already recorded as current. A late pending event never replaces a
// settled status.
func MergeOrderStatus(current, incoming string) string {
	if incoming == OrderStatusPending && current != "" && current != OrderStatusPending {
		return current
	}
	return incoming
}

// LinkResult reports how many rows a link-user-orders run attached to a user.
type LinkResult struct {
	LinkedOrders       int64 `json:"linked_orders"`
	LinkedTransactions int64 `json:"linked_transactions"`
}
