package service

import (
	"strings"
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

// DisputeService order complaints with admin-only resolution
type DisputeService struct {
	disputeRepo repository.DisputeRepository
	orderRepo   repository.OrderRepository
}

// NewDisputeService creates the dispute service
func NewDisputeService(disputeRepo repository.DisputeRepository, orderRepo repository.OrderRepository) *DisputeService {
	return &DisputeService{disputeRepo: disputeRepo, orderRepo: orderRepo}
}

// Open files a dispute on the customer's own order. At most one open
// dispute per order.
func (s *DisputeService) Open(customerID, orderID uint, subject, detail string) (*models.Dispute, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrValidation
	}

	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	existing, err := s.disputeRepo.GetOpenByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateDispute
	}

	dispute := &models.Dispute{
		OrderID:    orderID,
		CustomerID: customerID,
		Subject:    subject,
		Detail:     strings.TrimSpace(detail),
		Status:     constants.DisputeStatusOpen,
	}
	if err := s.disputeRepo.Create(dispute); err != nil {
		return nil, err
	}
	return dispute, nil
}

// GetForCustomer loads the customer's own dispute
func (s *DisputeService) GetForCustomer(customerID, disputeID uint) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil || dispute.CustomerID != customerID {
		return nil, ErrNotFound
	}
	return dispute, nil
}

// GetAdmin loads any dispute for the back office
func (s *DisputeService) GetAdmin(disputeID uint) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrNotFound
	}
	return dispute, nil
}

// ListForCustomer pages the customer's disputes
func (s *DisputeService) ListForCustomer(customerID uint, status string, page, pageSize int) ([]models.Dispute, int64, error) {
	return s.disputeRepo.List(repository.DisputeListFilter{
		CustomerID: customerID,
		Status:     status,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Resolve closes an open dispute in the customer's favor or with an
// agreed outcome. The resolution note is mandatory.
func (s *DisputeService) Resolve(adminID, disputeID uint, resolution string) (*models.Dispute, error) {
	return s.close(adminID, disputeID, constants.DisputeStatusResolved, resolution)
}

// Reject closes an open dispute without remedy, with the reason recorded
func (s *DisputeService) Reject(adminID, disputeID uint, resolution string) (*models.Dispute, error) {
	return s.close(adminID, disputeID, constants.DisputeStatusRejected, resolution)
}

func (s *DisputeService) close(adminID, disputeID uint, decision, resolution string) (*models.Dispute, error) {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, ErrValidation
	}
	dispute, err := s.disputeRepo.GetByID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	moved, err := s.disputeRepo.UpdateStatusFrom(disputeID,
		[]string{constants.DisputeStatusOpen},
		decision,
		map[string]interface{}{
			"resolution":  resolution,
			"resolved_by": adminID,
			"resolved_at": now,
		})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	return s.disputeRepo.GetByID(disputeID)
}

// ListAdmin pages all disputes
func (s *DisputeService) ListAdmin(filter repository.DisputeListFilter) ([]models.Dispute, int64, error) {
	return s.disputeRepo.List(filter)
}
