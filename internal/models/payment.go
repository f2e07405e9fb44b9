package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment payment record, one per order
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Method    string         `gorm:"not null" json:"method"` // cod or online
	Amount    Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency  string         `gorm:"not null;default:'ETB'" json:"currency"`
	Status    string         `gorm:"index;not null" json:"status"`
	Reference string         `gorm:"index" json:"reference"` // external receipt or transfer reference
	Note      string         `gorm:"type:text" json:"note,omitempty"`
	PaidAt    *time.Time     `gorm:"index" json:"paid_at,omitempty"`
	FailedAt  *time.Time     `json:"failed_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Payment) TableName() string {
	return "payments"
}
