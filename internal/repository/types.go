package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter product listing filters
type ProductListFilter struct {
	Page        int
	PageSize    int
	VendorID    uint
	CategoryID  uint
	Search      string
	City        string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	OnlyVisible bool // active products of KYC-approved vendors
}

// OrderListFilter order listing filters
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	VendorID    uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DeliveryJobListFilter delivery job listing filters
type DeliveryJobListFilter struct {
	Page     int
	PageSize int
	Status   string
	AgencyID uint
	Cities   []string // open jobs restricted to agency coverage
}

// WalletTransactionListFilter wallet ledger listing filters
type WalletTransactionListFilter struct {
	Page     int
	PageSize int
	VendorID uint
	Type     string
}

// PayoutListFilter payout listing filters
type PayoutListFilter struct {
	Page     int
	PageSize int
	VendorID uint
	Status   string
}

// KycListFilter KYC submission listing filters
type KycListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	ProfileType string
	Status      string
}

// UserListFilter user listing filters
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DisputeListFilter dispute listing filters
type DisputeListFilter struct {
	Page       int
	PageSize   int
	CustomerID uint
	OrderID    uint
	Status     string
}

// MessageListFilter message listing filters
type MessageListFilter struct {
	Page           int
	PageSize       int
	ConversationID uint
}
