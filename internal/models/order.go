package models

import (
	"time"

	"gorm.io/gorm"
)

// Order customer purchase from a single vendor
type Order struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	OrderNo    string `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerID uint   `gorm:"index;not null" json:"customer_id"`
	VendorID   uint   `gorm:"index;not null" json:"vendor_id"` // vendor profile id
	Status     string `gorm:"index;not null" json:"status"`

	ItemsTotal  Money  `gorm:"type:decimal(20,2);not null;default:0" json:"items_total"`
	DeliveryFee Money  `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`
	Total       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	Currency    string `gorm:"not null;default:'ETB'" json:"currency"`

	DeliveryMethod  string `gorm:"not null" json:"delivery_method"` // jemo_rider or vendor_self
	DeliveryFeeType string `gorm:"not null" json:"delivery_fee_type"`
	DestinationCity string `gorm:"index;not null" json:"destination_city"`
	Address         string `gorm:"type:text" json:"address"`
	PaymentMethod   string `gorm:"not null" json:"payment_method"` // cod or online

	CancelledBy  string     `gorm:"default:''" json:"cancelled_by,omitempty"` // role that cancelled
	CancelReason string     `gorm:"type:text" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	ConfirmedAt *time.Time `gorm:"index" json:"confirmed_at,omitempty"`
	InTransitAt *time.Time `json:"in_transit_at,omitempty"`
	DeliveredAt *time.Time `gorm:"index" json:"delivered_at,omitempty"`
	CompletedAt *time.Time `gorm:"index" json:"completed_at,omitempty"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}
