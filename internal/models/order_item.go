package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem immutable line snapshot taken at order creation
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"index;not null" json:"order_id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	Title     string         `gorm:"not null" json:"title"`
	UnitPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	LineTotal Money          `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (OrderItem) TableName() string {
	return "order_items"
}
