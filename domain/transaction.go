package domain

import "time"

// Transaction is a payment event received from the legacy payment platform.
type Transaction struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TransID       string     `gorm:"column:trans_id;uniqueIndex;not null" json:"trans_id"`
	LegacyOrderID string     `gorm:"column:legacy_order_id;index" json:"legacy_order_id"`
	ProductID     string     `gorm:"column:product_id;index;not null" json:"product_id"`
	BuyerEmail    string     `gorm:"column:buyer_email;index;not null" json:"buyer_email"`
	BuyerName     string     `gorm:"column:buyer_name" json:"buyer_name"`
	Amount        float64    `gorm:"column:amount;type:numeric" json:"amount"`
	Currency      string     `gorm:"column:currency" json:"currency"`
	Status        string     `gorm:"column:status" json:"status"`
	UserID        *string    `gorm:"column:user_id;index" json:"user_id"`
	OrderID       *uint64    `gorm:"column:order_id;index" json:"order_id"`
	CourseID      *uint64    `gorm:"column:course_id" json:"course_id"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ExternalOrderID is the key the order created from this transaction is stored under.
func (t Transaction) ExternalOrderID() string {
	if t.LegacyOrderID != "" {
		return t.LegacyOrderID
	}

	return t.TransID
}

type IngestResult struct {
	Transaction  Transaction `json:"transaction"`
	Order        *Order      `json:"order,omitempty"`
	OrderCreated bool        `json:"order_created"`
}
