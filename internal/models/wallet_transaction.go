package models

import "time"

// WalletTransaction append-only vendor wallet ledger entry, never updated or deleted
type WalletTransaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	VendorID  uint      `gorm:"index;not null" json:"vendor_id"` // vendor profile id
	Type      string    `gorm:"index;not null" json:"type"`
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	PayoutID  *uint     `gorm:"index" json:"payout_id,omitempty"`
	SourceID  *uint     `gorm:"index" json:"source_id,omitempty"` // entry this posting reverses or promotes
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName table name
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
