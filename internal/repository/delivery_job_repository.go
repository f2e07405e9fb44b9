package repository

import (
	"errors"
	"time"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// DeliveryJobRepository delivery job data access
type DeliveryJobRepository interface {
	Create(job *models.DeliveryJob) error
	GetByID(id uint) (*models.DeliveryJob, error)
	GetByOrderID(orderID uint) (*models.DeliveryJob, error)
	List(filter DeliveryJobListFilter) ([]models.DeliveryJob, int64, error)
	AcceptOpen(id uint, agencyID uint, at time.Time) (bool, error)
	UpdateStatusFrom(id uint, fromStatuses []string, status string, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormDeliveryJobRepository
}

// GormDeliveryJobRepository GORM implementation
type GormDeliveryJobRepository struct {
	db *gorm.DB
}

// NewDeliveryJobRepository creates the delivery job repository
func NewDeliveryJobRepository(db *gorm.DB) *GormDeliveryJobRepository {
	return &GormDeliveryJobRepository{db: db}
}

// WithTx binds a transaction
func (r *GormDeliveryJobRepository) WithTx(tx *gorm.DB) *GormDeliveryJobRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryJobRepository{db: tx}
}

// Create inserts a job
func (r *GormDeliveryJobRepository) Create(job *models.DeliveryJob) error {
	return r.db.Create(job).Error
}

// GetByID fetches a job by id
func (r *GormDeliveryJobRepository) GetByID(id uint) (*models.DeliveryJob, error) {
	var job models.DeliveryJob
	if err := r.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetByOrderID fetches the job created for an order
func (r *GormDeliveryJobRepository) GetByOrderID(orderID uint) (*models.DeliveryJob, error) {
	if orderID == 0 {
		return nil, nil
	}
	var job models.DeliveryJob
	if err := r.db.Where("order_id = ?", orderID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// List queries jobs
func (r *GormDeliveryJobRepository) List(filter DeliveryJobListFilter) ([]models.DeliveryJob, int64, error) {
	query := r.db.Model(&models.DeliveryJob{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AgencyID != 0 {
		query = query.Where("agency_id = ?", filter.AgencyID)
	}
	if len(filter.Cities) > 0 {
		query = query.Where("pickup_city IN ?", filter.Cities)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)

	var jobs []models.DeliveryJob
	if err := query.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// AcceptOpen assigns an open job to an agency. The conditional update makes
// exactly one acceptor win when several race for the same job.
func (r *GormDeliveryJobRepository) AcceptOpen(id uint, agencyID uint, at time.Time) (bool, error) {
	result := r.db.Model(&models.DeliveryJob{}).
		Where("id = ? AND status = ? AND agency_id IS NULL", id, "open").
		Updates(map[string]interface{}{
			"status":      "accepted",
			"agency_id":   agencyID,
			"accepted_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatusFrom conditionally moves the job status
func (r *GormDeliveryJobRepository) UpdateStatusFrom(id uint, fromStatuses []string, status string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	result := r.db.Model(&models.DeliveryJob{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
