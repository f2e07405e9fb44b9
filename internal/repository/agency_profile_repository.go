package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// AgencyProfileRepository agency profile data access
type AgencyProfileRepository interface {
	Create(profile *models.AgencyProfile) error
	GetByID(id uint) (*models.AgencyProfile, error)
	GetByUserID(userID uint) (*models.AgencyProfile, error)
	Update(profile *models.AgencyProfile) error
	UpdateFields(id uint, updates map[string]interface{}) error
	List(page, pageSize int, kycStatus string) ([]models.AgencyProfile, int64, error)
	WithTx(tx *gorm.DB) *GormAgencyProfileRepository
}

// GormAgencyProfileRepository GORM implementation
type GormAgencyProfileRepository struct {
	db *gorm.DB
}

// NewAgencyProfileRepository creates the agency profile repository
func NewAgencyProfileRepository(db *gorm.DB) *GormAgencyProfileRepository {
	return &GormAgencyProfileRepository{db: db}
}

// WithTx binds a transaction
func (r *GormAgencyProfileRepository) WithTx(tx *gorm.DB) *GormAgencyProfileRepository {
	if tx == nil {
		return r
	}
	return &GormAgencyProfileRepository{db: tx}
}

// Create inserts an agency profile
func (r *GormAgencyProfileRepository) Create(profile *models.AgencyProfile) error {
	return r.db.Create(profile).Error
}

// GetByID fetches an agency profile by id
func (r *GormAgencyProfileRepository) GetByID(id uint) (*models.AgencyProfile, error) {
	var profile models.AgencyProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserID fetches the profile owned by a user
func (r *GormAgencyProfileRepository) GetByUserID(userID uint) (*models.AgencyProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.AgencyProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Update saves an agency profile
func (r *GormAgencyProfileRepository) Update(profile *models.AgencyProfile) error {
	return r.db.Save(profile).Error
}

// UpdateFields applies a partial update
func (r *GormAgencyProfileRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.AgencyProfile{}).Where("id = ?", id).Updates(updates).Error
}

// List queries agency profiles
func (r *GormAgencyProfileRepository) List(page, pageSize int, kycStatus string) ([]models.AgencyProfile, int64, error) {
	query := r.db.Model(&models.AgencyProfile{})
	if kycStatus != "" {
		query = query.Where("kyc_status = ?", kycStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), page, pageSize)

	var profiles []models.AgencyProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
