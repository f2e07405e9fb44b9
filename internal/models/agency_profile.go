package models

import (
	"time"

	"gorm.io/gorm"
)

// AgencyProfile delivery profile owned by a rider or agency user
type AgencyProfile struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string         `gorm:"not null" json:"name"`
	CoverageCities StringArray    `gorm:"type:json" json:"coverage_cities"`
	KycStatus      string         `gorm:"index;not null;default:'pending'" json:"kyc_status"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (AgencyProfile) TableName() string {
	return "agency_profiles"
}

// Covers reports whether the agency serves the given city
func (a *AgencyProfile) Covers(city string) bool {
	for _, c := range a.CoverageCities {
		if c == city {
			return true
		}
	}
	return false
}
