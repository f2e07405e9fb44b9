package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// KycRepository KYC submission data access
type KycRepository interface {
	Create(submission *models.KycSubmission) error
	GetByID(id uint) (*models.KycSubmission, error)
	GetLatestByUser(userID uint, profileType string) (*models.KycSubmission, error)
	Update(submission *models.KycSubmission) error
	List(filter KycListFilter) ([]models.KycSubmission, int64, error)
	WithTx(tx *gorm.DB) *GormKycRepository
}

// GormKycRepository GORM implementation
type GormKycRepository struct {
	db *gorm.DB
}

// NewKycRepository creates the KYC repository
func NewKycRepository(db *gorm.DB) *GormKycRepository {
	return &GormKycRepository{db: db}
}

// WithTx binds a transaction
func (r *GormKycRepository) WithTx(tx *gorm.DB) *GormKycRepository {
	if tx == nil {
		return r
	}
	return &GormKycRepository{db: tx}
}

// Create inserts a submission
func (r *GormKycRepository) Create(submission *models.KycSubmission) error {
	return r.db.Create(submission).Error
}

// GetByID fetches a submission by id
func (r *GormKycRepository) GetByID(id uint) (*models.KycSubmission, error) {
	var submission models.KycSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// GetLatestByUser fetches the newest submission for a user and profile type
func (r *GormKycRepository) GetLatestByUser(userID uint, profileType string) (*models.KycSubmission, error) {
	if userID == 0 {
		return nil, nil
	}
	var submission models.KycSubmission
	query := r.db.Where("user_id = ?", userID)
	if profileType != "" {
		query = query.Where("profile_type = ?", profileType)
	}
	if err := query.Order("id DESC").First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// Update saves a submission
func (r *GormKycRepository) Update(submission *models.KycSubmission) error {
	return r.db.Save(submission).Error
}

// List queries submissions
func (r *GormKycRepository) List(filter KycListFilter) ([]models.KycSubmission, int64, error) {
	query := r.db.Model(&models.KycSubmission{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProfileType != "" {
		query = query.Where("profile_type = ?", filter.ProfileType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)

	var submissions []models.KycSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}
