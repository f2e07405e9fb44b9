package service

import (
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"gorm.io/gorm"
)

// DeliveryJobService delivery board for rider agencies
type DeliveryJobService struct {
	jobRepo    repository.DeliveryJobRepository
	agencyRepo repository.AgencyProfileRepository
	orders     *OrderService
}

// NewDeliveryJobService creates the delivery job service
func NewDeliveryJobService(jobRepo repository.DeliveryJobRepository, agencyRepo repository.AgencyProfileRepository, orders *OrderService) *DeliveryJobService {
	return &DeliveryJobService{jobRepo: jobRepo, agencyRepo: agencyRepo, orders: orders}
}

// approvedAgency loads the agency profile and enforces KYC approval
func (s *DeliveryJobService) approvedAgency(agencyID uint) (*models.AgencyProfile, error) {
	agency, err := s.agencyRepo.GetByID(agencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrNotFound
	}
	if agency.KycStatus != constants.KycStatusApproved {
		return nil, ErrKycNotApproved
	}
	return agency, nil
}

// ListAvailable pages open jobs whose pickup city is inside the agency's
// coverage. An agency with no coverage sees nothing.
func (s *DeliveryJobService) ListAvailable(agencyID uint, page, pageSize int) ([]models.DeliveryJob, int64, error) {
	agency, err := s.approvedAgency(agencyID)
	if err != nil {
		return nil, 0, err
	}
	if len(agency.CoverageCities) == 0 {
		return []models.DeliveryJob{}, 0, nil
	}
	return s.jobRepo.List(repository.DeliveryJobListFilter{
		Status:   constants.DeliveryJobStatusOpen,
		Cities:   agency.CoverageCities,
		Page:     page,
		PageSize: pageSize,
	})
}

// AcceptJob claims an open job for the agency. The claim is a conditional
// update, so when two agencies race exactly one wins and the other gets a
// conflict. Accepting moves the order to in_transit.
func (s *DeliveryJobService) AcceptJob(agencyID, jobID uint) (*models.DeliveryJob, error) {
	agency, err := s.approvedAgency(agencyID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.Status != constants.DeliveryJobStatusOpen {
		return nil, ErrJobAlreadyTaken
	}
	if !agency.Covers(job.PickupCity) {
		return nil, ErrOutsideCoverage
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		won, err := s.jobRepo.WithTx(tx).AcceptOpen(jobID, agencyID, time.Now())
		if err != nil {
			return err
		}
		if !won {
			return ErrJobAlreadyTaken
		}
		return s.orders.transitionInTransit(tx, job.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.orders.notifyStatus(job.OrderID, constants.OrderStatusInTransit)
	return s.jobRepo.GetByID(jobID)
}

// MarkDelivered closes the agency's accepted job and delivers the order.
// Cash on delivery payments settle here.
func (s *DeliveryJobService) MarkDelivered(agencyID, jobID uint) (*models.DeliveryJob, error) {
	if _, err := s.approvedAgency(agencyID); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.AgencyID == nil || *job.AgencyID != agencyID {
		return nil, ErrForbidden
	}

	order, err := s.orders.orderRepo.GetByID(job.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		moved, err := s.jobRepo.WithTx(tx).UpdateStatusFrom(jobID,
			[]string{constants.DeliveryJobStatusAccepted},
			constants.DeliveryJobStatusDelivered,
			map[string]interface{}{"delivered_at": time.Now()})
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}
		return s.orders.transitionDelivered(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.orders.notifyStatus(job.OrderID, constants.OrderStatusDelivered)
	return s.jobRepo.GetByID(jobID)
}

// GetForAgency loads a job the agency accepted or can still see on the board
func (s *DeliveryJobService) GetForAgency(agencyID, jobID uint) (*models.DeliveryJob, error) {
	agency, err := s.approvedAgency(agencyID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	if job.AgencyID != nil && *job.AgencyID == agencyID {
		return job, nil
	}
	if job.Status == constants.DeliveryJobStatusOpen && agency.Covers(job.PickupCity) {
		return job, nil
	}
	return nil, ErrNotFound
}

// ListHistory pages jobs the agency has taken
func (s *DeliveryJobService) ListHistory(agencyID uint, status string, page, pageSize int) ([]models.DeliveryJob, int64, error) {
	if _, err := s.approvedAgency(agencyID); err != nil {
		return nil, 0, err
	}
	return s.jobRepo.List(repository.DeliveryJobListFilter{
		Status:   status,
		AgencyID: agencyID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin pages all jobs
func (s *DeliveryJobService) ListAdmin(filter repository.DeliveryJobListFilter) ([]models.DeliveryJob, int64, error) {
	return s.jobRepo.List(filter)
}
