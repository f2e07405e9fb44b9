package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VendorProfileRepository vendor profile data access
type VendorProfileRepository interface {
	Create(profile *models.VendorProfile) error
	GetByID(id uint) (*models.VendorProfile, error)
	GetByIDForUpdate(id uint) (*models.VendorProfile, error)
	GetByUserID(userID uint) (*models.VendorProfile, error)
	Update(profile *models.VendorProfile) error
	UpdateFields(id uint, updates map[string]interface{}) error
	List(page, pageSize int, kycStatus string) ([]models.VendorProfile, int64, error)
	WithTx(tx *gorm.DB) *GormVendorProfileRepository
}

// GormVendorProfileRepository GORM implementation
type GormVendorProfileRepository struct {
	db *gorm.DB
}

// NewVendorProfileRepository creates the vendor profile repository
func NewVendorProfileRepository(db *gorm.DB) *GormVendorProfileRepository {
	return &GormVendorProfileRepository{db: db}
}

// WithTx binds a transaction
func (r *GormVendorProfileRepository) WithTx(tx *gorm.DB) *GormVendorProfileRepository {
	if tx == nil {
		return r
	}
	return &GormVendorProfileRepository{db: tx}
}

// Create inserts a vendor profile
func (r *GormVendorProfileRepository) Create(profile *models.VendorProfile) error {
	return r.db.Create(profile).Error
}

// GetByID fetches a vendor profile by id
func (r *GormVendorProfileRepository) GetByID(id uint) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByIDForUpdate fetches a vendor profile under a row lock
func (r *GormVendorProfileRepository) GetByIDForUpdate(id uint) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserID fetches the profile owned by a user
func (r *GormVendorProfileRepository) GetByUserID(userID uint) (*models.VendorProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.VendorProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Update saves a vendor profile
func (r *GormVendorProfileRepository) Update(profile *models.VendorProfile) error {
	return r.db.Save(profile).Error
}

// UpdateFields applies a partial update
func (r *GormVendorProfileRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.VendorProfile{}).Where("id = ?", id).Updates(updates).Error
}

// List queries vendor profiles
func (r *GormVendorProfileRepository) List(page, pageSize int, kycStatus string) ([]models.VendorProfile, int64, error) {
	query := r.db.Model(&models.VendorProfile{})
	if kycStatus != "" {
		query = query.Where("kyc_status = ?", kycStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), page, pageSize)

	var profiles []models.VendorProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
