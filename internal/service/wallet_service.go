package service

import (
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService vendor wallet built on an append-only ledger. Balances are
// never stored; every read sums the postings.
type WalletService struct {
	walletRepo     repository.WalletRepository
	payoutRepo     repository.PayoutRepository
	vendorRepo     repository.VendorProfileRepository
	settingService *SettingService
}

// NewWalletService creates the wallet service
func NewWalletService(walletRepo repository.WalletRepository, payoutRepo repository.PayoutRepository, vendorRepo repository.VendorProfileRepository, settingService *SettingService) *WalletService {
	return &WalletService{
		walletRepo:     walletRepo,
		payoutRepo:     payoutRepo,
		vendorRepo:     vendorRepo,
		settingService: settingService,
	}
}

// WalletBalance derived balances of a vendor wallet
type WalletBalance struct {
	Available models.Money `json:"available"`
	Pending   models.Money `json:"pending"`
}

// Balances sums the ledger. A reversal cancels the effect of the entry it
// references; a promotion moves a pending credit into available.
func (s *WalletService) Balances(vendorID uint) (WalletBalance, error) {
	return balancesFromLedger(s.walletRepo, vendorID)
}

func balancesFromLedger(repo repository.WalletRepository, vendorID uint) (WalletBalance, error) {
	sums, err := repo.SumByType(vendorID)
	if err != nil {
		return WalletBalance{}, err
	}
	promoted, err := repo.PromotedPendingSum(vendorID)
	if err != nil {
		return WalletBalance{}, err
	}
	reversals, err := repo.ReversalSumByReversedType(vendorID)
	if err != nil {
		return WalletBalance{}, err
	}

	available := sums[constants.WalletTxnCreditAvailable].
		Sub(sums[constants.WalletTxnDebitWithdrawal]).
		Sub(reversals[constants.WalletTxnCreditAvailable]).
		Add(reversals[constants.WalletTxnDebitWithdrawal])

	pending := sums[constants.WalletTxnCreditPending].
		Sub(promoted).
		Sub(reversals[constants.WalletTxnCreditPending])

	return WalletBalance{
		Available: models.NewMoneyFromDecimal(available),
		Pending:   models.NewMoneyFromDecimal(pending),
	}, nil
}

// CreditPending appends the vendor's earnings for a confirmed order.
// Idempotent per (vendor, order).
func (s *WalletService) CreditPending(tx *gorm.DB, vendorID, orderID uint, amount models.Money) error {
	repo := s.walletRepo.WithTx(tx)
	existing, err := repo.GetEntryByOrderAndType(vendorID, orderID, constants.WalletTxnCreditPending)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	entry := &models.WalletTransaction{
		VendorID: vendorID,
		Type:     constants.WalletTxnCreditPending,
		Amount:   amount,
		OrderID:  &orderID,
	}
	return repo.CreateEntry(entry)
}

// PromoteToAvailable posts the pending credit of a completed order into
// available. A new posting referencing the pending entry, never a mutation.
func (s *WalletService) PromoteToAvailable(tx *gorm.DB, vendorID, orderID uint) error {
	repo := s.walletRepo.WithTx(tx)
	pending, err := repo.GetEntryByOrderAndType(vendorID, orderID, constants.WalletTxnCreditPending)
	if err != nil {
		return err
	}
	if pending == nil {
		logger.Warnw("wallet_promote_without_pending_credit", "vendor_id", vendorID, "order_id", orderID)
		return nil
	}
	promoted, err := repo.GetEntryBySource(pending.ID, constants.WalletTxnCreditAvailable)
	if err != nil {
		return err
	}
	if promoted != nil {
		return nil
	}
	entry := &models.WalletTransaction{
		VendorID: vendorID,
		Type:     constants.WalletTxnCreditAvailable,
		Amount:   pending.Amount,
		OrderID:  &orderID,
		SourceID: &pending.ID,
	}
	return repo.CreateEntry(entry)
}

// ReverseOrderCredit undoes the pending credit of a cancelled order
func (s *WalletService) ReverseOrderCredit(tx *gorm.DB, vendorID, orderID uint) error {
	repo := s.walletRepo.WithTx(tx)
	pending, err := repo.GetEntryByOrderAndType(vendorID, orderID, constants.WalletTxnCreditPending)
	if err != nil {
		return err
	}
	if pending == nil {
		return nil
	}
	reversed, err := repo.GetEntryBySource(pending.ID, constants.WalletTxnReversal)
	if err != nil {
		return err
	}
	if reversed != nil {
		return nil
	}
	entry := &models.WalletTransaction{
		VendorID: vendorID,
		Type:     constants.WalletTxnReversal,
		Amount:   pending.Amount,
		OrderID:  &orderID,
		SourceID: &pending.ID,
		Note:     "order cancelled",
	}
	return repo.CreateEntry(entry)
}

// RequestWithdrawal validates against the minimum and the available balance,
// then appends the debit and creates the payout in one transaction. The
// vendor profile row is locked so the balance is recomputed under the same
// lock that guards the debit; concurrent requests serialize on it.
func (s *WalletService) RequestWithdrawal(vendorID uint, amount models.Money, bankName, accountNo string) (*models.Payout, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrValidation
	}
	minimum, err := s.settingService.GetMinWithdrawal()
	if err != nil {
		return nil, err
	}
	if amount.LessThan(minimum.Decimal) {
		return nil, ErrBelowMinWithdrawal
	}

	payout := &models.Payout{
		ReferenceNo: uuid.NewString(),
		VendorID:    vendorID,
		Amount:      amount,
		Status:      constants.PayoutStatusRequested,
		BankName:    bankName,
		AccountNo:   accountNo,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := s.vendorRepo.WithTx(tx).GetByIDForUpdate(vendorID)
		if err != nil {
			return err
		}
		if profile == nil {
			return ErrNotFound
		}
		balance, err := balancesFromLedger(s.walletRepo.WithTx(tx), vendorID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(balance.Available.Decimal) {
			return ErrInsufficientBalance
		}
		if err := s.payoutRepo.WithTx(tx).Create(payout); err != nil {
			return err
		}
		entry := &models.WalletTransaction{
			VendorID: vendorID,
			Type:     constants.WalletTxnDebitWithdrawal,
			Amount:   amount,
			PayoutID: &payout.ID,
		}
		return s.walletRepo.WithTx(tx).CreateEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// MarkPayoutPaid admin confirms a payout transfer
func (s *WalletService) MarkPayoutPaid(adminID, payoutID uint) (*models.Payout, error) {
	payout, err := s.payoutRepo.GetByID(payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, ErrNotFound
	}
	now := time.Now()
	moved, err := s.payoutRepo.UpdateStatusFrom(payoutID,
		[]string{constants.PayoutStatusRequested},
		constants.PayoutStatusPaid,
		map[string]interface{}{
			"reviewed_by": adminID,
			"reviewed_at": now,
		})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	return s.payoutRepo.GetByID(payoutID)
}

// RejectPayout admin rejects a payout; the withheld amount is restored by a
// reversal of the withdrawal entry.
func (s *WalletService) RejectPayout(adminID, payoutID uint, reason string) (*models.Payout, error) {
	if reason == "" {
		return nil, ErrRejectReasonMissing
	}
	payout, err := s.payoutRepo.GetByID(payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.payoutRepo.WithTx(tx).UpdateStatusFrom(payoutID,
			[]string{constants.PayoutStatusRequested},
			constants.PayoutStatusRejected,
			map[string]interface{}{
				"reviewed_by":   adminID,
				"reviewed_at":   now,
				"reject_reason": reason,
			})
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}

		repo := s.walletRepo.WithTx(tx)
		debit, err := repo.GetEntryByPayoutAndType(payout.ID, constants.WalletTxnDebitWithdrawal)
		if err != nil {
			return err
		}
		if debit == nil {
			logger.Warnw("payout_reject_missing_debit_entry", "payout_id", payout.ID)
			return nil
		}
		reversal := &models.WalletTransaction{
			VendorID: payout.VendorID,
			Type:     constants.WalletTxnReversal,
			Amount:   debit.Amount,
			PayoutID: &payout.ID,
			SourceID: &debit.ID,
			Note:     "payout rejected",
		}
		return repo.CreateEntry(reversal)
	})
	if err != nil {
		return nil, err
	}
	return s.payoutRepo.GetByID(payoutID)
}

// ListTransactions pages a vendor's ledger
func (s *WalletService) ListTransactions(filter repository.WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	return s.walletRepo.ListEntries(filter)
}

// ListPayouts pages payouts
func (s *WalletService) ListPayouts(filter repository.PayoutListFilter) ([]models.Payout, int64, error) {
	return s.payoutRepo.List(filter)
}
