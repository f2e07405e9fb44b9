package service

import (
	"github.com/jemo-market/api/internal/config"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingService admin-tunable configuration backed by the settings table
type SettingService struct {
	repo repository.SettingRepository
	cfg  *config.Config
}

// NewSettingService creates the setting service
func NewSettingService(repo repository.SettingRepository, cfg *config.Config) *SettingService {
	return &SettingService{repo: repo, cfg: cfg}
}

// GetByKey fetches a raw setting value
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update upserts a setting value
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetPlatformPricing resolves rider pricing, settings row over config defaults
func (s *SettingService) GetPlatformPricing() (PlatformPricing, error) {
	pricing := PlatformPricing{
		SameCityFee:  moneyFromString(s.cfg.Delivery.SameCityFee),
		OtherCityFee: moneyFromString(s.cfg.Delivery.OtherCityFee),
	}
	if s.repo == nil {
		return pricing, nil
	}
	value, err := s.GetByKey(constants.SettingKeyDeliveryPricing)
	if err != nil {
		return pricing, err
	}
	if value == nil {
		return pricing, nil
	}
	if fee, ok := settingMoney(value, "same_city_fee"); ok {
		pricing.SameCityFee = fee
	}
	if fee, ok := settingMoney(value, "other_city_fee"); ok {
		pricing.OtherCityFee = fee
	}
	return pricing, nil
}

// GetMinWithdrawal resolves the minimum payout amount
func (s *SettingService) GetMinWithdrawal() (models.Money, error) {
	minimum := moneyFromString(s.cfg.Wallet.MinWithdrawal)
	if s.repo == nil {
		return minimum, nil
	}
	value, err := s.GetByKey(constants.SettingKeyWalletConfig)
	if err != nil {
		return minimum, err
	}
	if value == nil {
		return minimum, nil
	}
	if amount, ok := settingMoney(value, "min_withdrawal"); ok {
		minimum = amount
	}
	return minimum, nil
}

func moneyFromString(raw string) models.Money {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Money{}
	}
	return models.NewMoneyFromDecimal(d)
}

func settingMoney(value models.JSON, field string) (models.Money, bool) {
	raw, ok := value[field]
	if !ok {
		return models.Money{}, false
	}
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return models.Money{}, false
		}
		return models.NewMoneyFromDecimal(d), true
	case float64:
		return models.NewMoneyFromDecimal(decimal.NewFromFloat(v)), true
	}
	return models.Money{}, false
}
