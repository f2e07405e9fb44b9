package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// DisputeRepository dispute data access
type DisputeRepository interface {
	Create(dispute *models.Dispute) error
	GetByID(id uint) (*models.Dispute, error)
	GetOpenByOrder(orderID uint) (*models.Dispute, error)
	List(filter DisputeListFilter) ([]models.Dispute, int64, error)
	UpdateStatusFrom(id uint, fromStatuses []string, status string, updates map[string]interface{}) (bool, error)
}

// GormDisputeRepository GORM implementation
type GormDisputeRepository struct {
	db *gorm.DB
}

// NewDisputeRepository creates the dispute repository
func NewDisputeRepository(db *gorm.DB) *GormDisputeRepository {
	return &GormDisputeRepository{db: db}
}

// Create inserts a dispute
func (r *GormDisputeRepository) Create(dispute *models.Dispute) error {
	return r.db.Create(dispute).Error
}

// GetByID fetches a dispute by id
func (r *GormDisputeRepository) GetByID(id uint) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := r.db.First(&dispute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

// GetOpenByOrder fetches the open dispute on an order, if any
func (r *GormDisputeRepository) GetOpenByOrder(orderID uint) (*models.Dispute, error) {
	if orderID == 0 {
		return nil, nil
	}
	var dispute models.Dispute
	err := r.db.Where("order_id = ? AND status = ?", orderID, "open").First(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

// List pages disputes
func (r *GormDisputeRepository) List(filter DisputeListFilter) ([]models.Dispute, int64, error) {
	query := r.db.Model(&models.Dispute{})
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)

	var disputes []models.Dispute
	if err := query.Find(&disputes).Error; err != nil {
		return nil, 0, err
	}
	return disputes, total, nil
}

// UpdateStatusFrom conditionally moves the dispute status
func (r *GormDisputeRepository) UpdateStatusFrom(id uint, fromStatuses []string, status string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	result := r.db.Model(&models.Dispute{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
