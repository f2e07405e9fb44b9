package models

import (
	"time"

	"gorm.io/gorm"
)

// Dispute customer complaint on an order
type Dispute struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`
	Subject    string         `gorm:"not null" json:"subject"`
	Detail     string         `gorm:"type:text" json:"detail"`
	Status     string         `gorm:"index;not null;default:'open'" json:"status"`
	Resolution string         `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedBy *uint          `gorm:"index" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Dispute) TableName() string {
	return "disputes"
}
