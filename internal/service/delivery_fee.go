package service

import (
	"strings"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
)

// DeliveryFeeConfig delivery pricing of a product plus its vendor's city
type DeliveryFeeConfig struct {
	DeliveryType string
	FreeDelivery bool
	FlatFee      *models.Money
	SameCityFee  *models.Money
	OtherCityFee *models.Money
	VendorCity   string
}

// PlatformPricing platform rider pricing, sourced from config or settings
type PlatformPricing struct {
	SameCityFee  models.Money
	OtherCityFee models.Money
}

// DeliveryFeeResult outcome of a fee calculation
type DeliveryFeeResult struct {
	Available bool         `json:"available"`
	Fee       models.Money `json:"fee"`
	FeeType   string       `json:"fee_type"`
	Reason    string       `json:"reason,omitempty"`
}

// CalculateDeliveryFee resolves the delivery fee for a destination city.
// Deterministic and total: every (config, city) pair yields a result, never
// an error. Precedence: platform rider pricing, free-delivery flag, flat fee,
// same-city/other-city fields, then free fallback.
func CalculateDeliveryFee(cfg DeliveryFeeConfig, pricing PlatformPricing, destCity string) DeliveryFeeResult {
	sameCity := citiesEqual(cfg.VendorCity, destCity)

	if cfg.DeliveryType == constants.DeliveryMethodJemoRider {
		fee := pricing.SameCityFee
		if !sameCity {
			fee = pricing.OtherCityFee
		}
		return DeliveryFeeResult{
			Available: true,
			Fee:       fee,
			FeeType:   constants.FeeTypeJemoRider,
		}
	}

	if cfg.FreeDelivery {
		return DeliveryFeeResult{
			Available: true,
			FeeType:   constants.FeeTypeFree,
		}
	}

	if cfg.FlatFee != nil {
		return DeliveryFeeResult{
			Available: true,
			Fee:       *cfg.FlatFee,
			FeeType:   constants.FeeTypeFlat,
		}
	}

	if sameCity {
		if cfg.SameCityFee != nil {
			return DeliveryFeeResult{
				Available: true,
				Fee:       *cfg.SameCityFee,
				FeeType:   constants.FeeTypeSameCity,
			}
		}
	} else {
		if cfg.OtherCityFee != nil {
			return DeliveryFeeResult{
				Available: true,
				Fee:       *cfg.OtherCityFee,
				FeeType:   constants.FeeTypeOtherCity,
			}
		}
		// vendor ships only inside its own city
		if cfg.SameCityFee != nil {
			return DeliveryFeeResult{
				Available: false,
				Reason:    "vendor does not deliver to this city",
			}
		}
	}

	// nothing configured, delivery permitted at no charge
	return DeliveryFeeResult{
		Available: true,
		FeeType:   constants.FeeTypeFree,
	}
}

func citiesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
