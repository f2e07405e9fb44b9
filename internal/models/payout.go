package models

import (
	"time"

	"gorm.io/gorm"
)

// Payout vendor withdrawal request
type Payout struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ReferenceNo  string         `gorm:"uniqueIndex;not null" json:"reference_no"`
	VendorID     uint           `gorm:"index;not null" json:"vendor_id"` // vendor profile id
	Amount       Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status       string         `gorm:"index;not null;default:'requested'" json:"status"`
	BankName     string         `json:"bank_name"`
	AccountNo    string         `json:"account_no"`
	RejectReason string         `gorm:"type:text" json:"reject_reason,omitempty"`
	ReviewedBy   *uint          `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Payout) TableName() string {
	return "payouts"
}
