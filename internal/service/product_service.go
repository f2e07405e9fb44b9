package service

import (
	"strings"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService catalog read side plus vendor product management
type ProductService struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorProfileRepository
}

// NewProductService creates the product service
func NewProductService(productRepo repository.ProductRepository, vendorRepo repository.VendorProfileRepository) *ProductService {
	return &ProductService{productRepo: productRepo, vendorRepo: vendorRepo}
}

// ProductInput vendor create/update payload
type ProductInput struct {
	CategoryID      *uint
	Title           string
	Description     string
	Images          []string
	Price           string
	Stock           int
	Active          *bool
	DeliveryType    string
	FreeDelivery    *bool
	FlatDeliveryFee *string
	SameCityFee     *string
	OtherCityFee    *string
}

// ListPublic pages publicly visible products
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyVisible = true
	return s.productRepo.List(filter)
}

// GetPublic loads a publicly visible product
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetVisibleByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// validateInput normalizes a vendor payload into model fields
func (s *ProductService) validateInput(input ProductInput, product *models.Product) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrValidation
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return ErrValidation
	}
	if input.Stock < 0 {
		return ErrValidation
	}

	deliveryType := strings.TrimSpace(input.DeliveryType)
	switch deliveryType {
	case "":
		deliveryType = constants.DeliveryMethodJemoRider
	case constants.DeliveryMethodJemoRider, constants.DeliveryMethodVendorSelf:
	default:
		return ErrValidation
	}

	product.CategoryID = input.CategoryID
	product.Title = title
	product.Description = strings.TrimSpace(input.Description)
	product.Images = input.Images
	product.Price = models.NewMoneyFromDecimal(price)
	product.Stock = input.Stock
	product.DeliveryType = deliveryType
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.FreeDelivery != nil {
		product.FreeDelivery = *input.FreeDelivery
	}

	for _, f := range []struct {
		src *string
		dst **models.Money
	}{
		{input.FlatDeliveryFee, &product.FlatDeliveryFee},
		{input.SameCityFee, &product.SameCityFee},
		{input.OtherCityFee, &product.OtherCityFee},
	} {
		if f.src == nil {
			continue
		}
		if strings.TrimSpace(*f.src) == "" {
			*f.dst = nil
			continue
		}
		fee, err := decimal.NewFromString(strings.TrimSpace(*f.src))
		if err != nil || fee.IsNegative() {
			return ErrValidation
		}
		m := models.NewMoneyFromDecimal(fee)
		*f.dst = &m
	}
	return nil
}

// CreateForVendor adds a product under the vendor's shop
func (s *ProductService) CreateForVendor(vendorID uint, input ProductInput) (*models.Product, error) {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrNotFound
	}
	if vendor.KycStatus != constants.KycStatusApproved {
		return nil, ErrKycNotApproved
	}

	product := &models.Product{VendorID: vendorID, Active: true}
	if err := s.validateInput(input, product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ownedProduct loads a product and checks vendor ownership
func (s *ProductService) ownedProduct(vendorID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.VendorID != vendorID {
		return nil, ErrNotFound
	}
	return product, nil
}

// UpdateForVendor edits the vendor's own product
func (s *ProductService) UpdateForVendor(vendorID, productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(vendorID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input, product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteForVendor removes the vendor's own product
func (s *ProductService) DeleteForVendor(vendorID, productID uint) error {
	product, err := s.ownedProduct(vendorID, productID)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(product.ID)
}

// GetForVendor loads the vendor's own product
func (s *ProductService) GetForVendor(vendorID, productID uint) (*models.Product, error) {
	return s.ownedProduct(vendorID, productID)
}

// ListForVendor pages the vendor's own products, hidden ones included
func (s *ProductService) ListForVendor(vendorID uint, page, pageSize int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		VendorID: vendorID,
		Page:     page,
		PageSize: pageSize,
	})
}
