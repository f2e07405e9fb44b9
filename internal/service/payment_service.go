package service

import (
	"strings"
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

// PaymentService manual payment review for the back office. Online payments
// are settled by an admin against an external receipt reference; provider
// callbacks are out of scope.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService creates the payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo}
}

// GetByOrder loads the payment attached to an order
func (s *PaymentService) GetByOrder(orderID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// Confirm marks an initiated payment as successful
func (s *PaymentService) Confirm(orderID uint, reference, note string) (*models.Payment, error) {
	payment, err := s.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"paid_at": time.Now()}
	if ref := strings.TrimSpace(reference); ref != "" {
		updates["reference"] = ref
	}
	if note = strings.TrimSpace(note); note != "" {
		updates["note"] = note
	}
	moved, err := s.paymentRepo.UpdateStatusFrom(payment.ID,
		[]string{constants.PaymentStatusInitiated},
		constants.PaymentStatusSuccess, updates)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	return s.paymentRepo.GetByID(payment.ID)
}

// Fail marks an initiated payment as failed
func (s *PaymentService) Fail(orderID uint, note string) (*models.Payment, error) {
	payment, err := s.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"failed_at": time.Now()}
	if note = strings.TrimSpace(note); note != "" {
		updates["note"] = note
	}
	moved, err := s.paymentRepo.UpdateStatusFrom(payment.ID,
		[]string{constants.PaymentStatusInitiated},
		constants.PaymentStatusFailed, updates)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	return s.paymentRepo.GetByID(payment.ID)
}
