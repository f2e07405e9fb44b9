package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletRepository append-only wallet ledger access. Entries are only ever
// inserted; balances are derived by summation.
type WalletRepository interface {
	CreateEntry(entry *models.WalletTransaction) error
	GetEntryByID(id uint) (*models.WalletTransaction, error)
	GetEntryByOrderAndType(vendorID, orderID uint, entryType string) (*models.WalletTransaction, error)
	GetEntryBySource(sourceID uint, entryType string) (*models.WalletTransaction, error)
	GetEntryByPayoutAndType(payoutID uint, entryType string) (*models.WalletTransaction, error)
	ListEntries(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error)
	SumByType(vendorID uint) (map[string]decimal.Decimal, error)
	PromotedPendingSum(vendorID uint) (decimal.Decimal, error)
	ReversalSumByReversedType(vendorID uint) (map[string]decimal.Decimal, error)
	WithTx(tx *gorm.DB) *GormWalletRepository
}

// GormWalletRepository GORM implementation
type GormWalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates the wallet repository
func NewWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// WithTx binds a transaction
func (r *GormWalletRepository) WithTx(tx *gorm.DB) *GormWalletRepository {
	if tx == nil {
		return r
	}
	return &GormWalletRepository{db: tx}
}

// CreateEntry appends a ledger entry
func (r *GormWalletRepository) CreateEntry(entry *models.WalletTransaction) error {
	return r.db.Create(entry).Error
}

// GetEntryByID fetches a ledger entry
func (r *GormWalletRepository) GetEntryByID(id uint) (*models.WalletTransaction, error) {
	var entry models.WalletTransaction
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetEntryByOrderAndType fetches the entry written for an order, used to keep
// order-driven credits idempotent.
func (r *GormWalletRepository) GetEntryByOrderAndType(vendorID, orderID uint, entryType string) (*models.WalletTransaction, error) {
	if vendorID == 0 || orderID == 0 {
		return nil, nil
	}
	var entry models.WalletTransaction
	err := r.db.
		Where("vendor_id = ? AND order_id = ? AND type = ?", vendorID, orderID, entryType).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetEntryBySource fetches the posting that references a source entry, used
// to keep promotions and reversals idempotent.
func (r *GormWalletRepository) GetEntryBySource(sourceID uint, entryType string) (*models.WalletTransaction, error) {
	if sourceID == 0 {
		return nil, nil
	}
	var entry models.WalletTransaction
	err := r.db.Where("source_id = ? AND type = ?", sourceID, entryType).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetEntryByPayoutAndType fetches the entry written for a payout
func (r *GormWalletRepository) GetEntryByPayoutAndType(payoutID uint, entryType string) (*models.WalletTransaction, error) {
	if payoutID == 0 {
		return nil, nil
	}
	var entry models.WalletTransaction
	err := r.db.Where("payout_id = ? AND type = ?", payoutID, entryType).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ListEntries pages ledger entries
func (r *GormWalletRepository) ListEntries(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	query := r.db.Model(&models.WalletTransaction{})
	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)

	var entries []models.WalletTransaction
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

type typeSumRow struct {
	Type string
	Sum  decimal.Decimal
}

// SumByType sums entry amounts grouped by type
func (r *GormWalletRepository) SumByType(vendorID uint) (map[string]decimal.Decimal, error) {
	var rows []typeSumRow
	err := r.db.Model(&models.WalletTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS sum").
		Where("vendor_id = ?", vendorID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Type] = row.Sum
	}
	return sums, nil
}

// PromotedPendingSum sums available credits that promoted a pending credit
func (r *GormWalletRepository) PromotedPendingSum(vendorID uint) (decimal.Decimal, error) {
	var row struct {
		Sum decimal.Decimal
	}
	err := r.db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS sum").
		Where("vendor_id = ? AND type = ? AND source_id IS NOT NULL", vendorID, "credit_available").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Sum, nil
}

// ReversalSumByReversedType sums reversal amounts grouped by the type of the
// entry each reversal undoes.
func (r *GormWalletRepository) ReversalSumByReversedType(vendorID uint) (map[string]decimal.Decimal, error) {
	var rows []typeSumRow
	err := r.db.
		Table("wallet_transactions AS rev").
		Select("orig.type AS type, COALESCE(SUM(rev.amount), 0) AS sum").
		Joins("JOIN wallet_transactions AS orig ON orig.id = rev.source_id").
		Where("rev.vendor_id = ? AND rev.type = ?", vendorID, "reversal").
		Group("orig.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Type] = row.Sum
	}
	return sums, nil
}
