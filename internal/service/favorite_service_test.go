package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/repository"

	"gorm.io/gorm"
)

func setupFavoriteTest(t *testing.T) (*FavoriteService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "favorite_service_test")
	return NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewProductRepository(db),
	), db
}

func TestFavoriteAddRemove(t *testing.T) {
	svc, db := setupFavoriteTest(t)
	vendor := createVendor(t, db, "Addis Ababa")
	customer := createCustomer(t, db)
	product := createProduct(t, db, vendor.ID, "10", 5, constants.DeliveryMethodJemoRider)

	if err := svc.Add(customer.ID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// repeats are a no-op
	if err := svc.Add(customer.ID, product.ID); err != nil {
		t.Fatalf("repeated add failed: %v", err)
	}

	entries, total, err := svc.List(customer.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected one favorite, got %d", total)
	}
	if entries[0].Product == nil || entries[0].Product.ID != product.ID {
		t.Fatalf("product snapshot missing: %+v", entries[0])
	}

	if err := svc.Remove(customer.ID, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// removing twice stays silent
	if err := svc.Remove(customer.ID, product.ID); err != nil {
		t.Fatalf("repeated remove failed: %v", err)
	}
	_, total, err = svc.List(customer.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected empty list, got %d", total)
	}
}

func TestFavoriteHiddenProduct(t *testing.T) {
	svc, db := setupFavoriteTest(t)
	vendor := createVendor(t, db, "Addis Ababa")
	customer := createCustomer(t, db)
	product := createProduct(t, db, vendor.ID, "10", 5, constants.DeliveryMethodJemoRider)

	if err := svc.Add(customer.ID, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	if err := svc.Add(customer.ID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// hiding a product later does not delete the favorite
	if err := db.Model(product).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	entries, total, err := svc.List(customer.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected the favorite to survive, got %d", total)
	}
}
