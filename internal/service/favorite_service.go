package service

import (
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

// FavoriteService customer product favorites
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

// NewFavoriteService creates the favorite service
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

// Add favorites a visible product, idempotent on repeats
func (s *FavoriteService) Add(userID, productID uint) error {
	product, err := s.productRepo.GetVisibleByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.favoriteRepo.Add(userID, productID)
}

// Remove unfavorites a product
func (s *FavoriteService) Remove(userID, productID uint) error {
	return s.favoriteRepo.Remove(userID, productID)
}

// FavoriteEntry favorite paired with its product snapshot, nil when the
// product is no longer visible
type FavoriteEntry struct {
	Favorite models.Favorite `json:"favorite"`
	Product  *models.Product `json:"product,omitempty"`
}

// List pages the user's favorites with their current product data
func (s *FavoriteService) List(userID uint, page, pageSize int) ([]FavoriteEntry, int64, error) {
	favorites, total, err := s.favoriteRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	entries := make([]FavoriteEntry, 0, len(favorites))
	for _, f := range favorites {
		entries = append(entries, FavoriteEntry{Favorite: f, Product: byID[f.ProductID]})
	}
	return entries, total, nil
}
