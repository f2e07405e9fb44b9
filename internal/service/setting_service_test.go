package service

import (
	"testing"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/repository"
)

func setupSettingServiceTest(t *testing.T) *SettingService {
	t.Helper()
	db := openTestDB(t, "setting_service_test")
	return NewSettingService(repository.NewSettingRepository(db), testConfig())
}

func TestPlatformPricingDefaults(t *testing.T) {
	svc := setupSettingServiceTest(t)

	pricing, err := svc.GetPlatformPricing()
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if pricing.SameCityFee.String() != "80.00" || pricing.OtherCityFee.String() != "200.00" {
		t.Fatalf("unexpected defaults: %+v", pricing)
	}
}

func TestPlatformPricingSettingOverride(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if _, err := svc.Update(constants.SettingKeyDeliveryPricing, map[string]interface{}{
		"same_city_fee":  "55",
		"other_city_fee": float64(140),
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	pricing, err := svc.GetPlatformPricing()
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	if pricing.SameCityFee.String() != "55.00" {
		t.Fatalf("same city fee = %s, want 55.00", pricing.SameCityFee.String())
	}
	if pricing.OtherCityFee.String() != "140.00" {
		t.Fatalf("other city fee = %s, want 140.00", pricing.OtherCityFee.String())
	}
}

func TestPlatformPricingIgnoresGarbage(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if _, err := svc.Update(constants.SettingKeyDeliveryPricing, map[string]interface{}{
		"same_city_fee": "not-a-number",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	pricing, err := svc.GetPlatformPricing()
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	// unparseable values fall back to config
	if pricing.SameCityFee.String() != "80.00" {
		t.Fatalf("same city fee = %s, want config default 80.00", pricing.SameCityFee.String())
	}
}

func TestMinWithdrawalOverride(t *testing.T) {
	svc := setupSettingServiceTest(t)

	minimum, err := svc.GetMinWithdrawal()
	if err != nil {
		t.Fatalf("min withdrawal failed: %v", err)
	}
	if minimum.String() != "100.00" {
		t.Fatalf("default min = %s, want 100.00", minimum.String())
	}

	if _, err := svc.Update(constants.SettingKeyWalletConfig, map[string]interface{}{
		"min_withdrawal": "500",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	minimum, err = svc.GetMinWithdrawal()
	if err != nil {
		t.Fatalf("min withdrawal failed: %v", err)
	}
	if minimum.String() != "500.00" {
		t.Fatalf("min = %s, want 500.00", minimum.String())
	}
}

func TestGetByKeyMissing(t *testing.T) {
	svc := setupSettingServiceTest(t)
	value, err := svc.GetByKey("no_such_key")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for a missing key, got: %v", value)
	}
}
