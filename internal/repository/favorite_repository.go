package repository

import (
	"errors"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository favorite data access
type FavoriteRepository interface {
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	Exists(userID, productID uint) (bool, error)
	ListByUser(userID uint, page, pageSize int) ([]models.Favorite, int64, error)
}

// GormFavoriteRepository GORM implementation
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates the favorite repository
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add inserts a favorite, idempotent on duplicates
func (r *GormFavoriteRepository) Add(userID, productID uint) error {
	existing, err := r.get(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return r.db.Create(&models.Favorite{UserID: userID, ProductID: productID}).Error
}

// Remove deletes a favorite
func (r *GormFavoriteRepository) Remove(userID, productID uint) error {
	return r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).Error
}

// Exists reports whether a favorite exists
func (r *GormFavoriteRepository) Exists(userID, productID uint) (bool, error) {
	favorite, err := r.get(userID, productID)
	if err != nil {
		return false, err
	}
	return favorite != nil, nil
}

func (r *GormFavoriteRepository) get(userID, productID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

// ListByUser pages a user's favorites
func (r *GormFavoriteRepository) ListByUser(userID uint, page, pageSize int) ([]models.Favorite, int64, error) {
	query := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), page, pageSize)

	var favorites []models.Favorite
	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
