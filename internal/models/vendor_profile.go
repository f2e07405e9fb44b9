package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorProfile shop profile owned by a vendor user
type VendorProfile struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	ShopName     string         `gorm:"not null" json:"shop_name"`
	Description  string         `gorm:"type:text" json:"description"`
	City         string         `gorm:"index;not null" json:"city"`
	FreeDelivery bool           `gorm:"not null;default:false" json:"free_delivery"`
	KycStatus    string         `gorm:"index;not null;default:'pending'" json:"kyc_status"` // denormalized from latest submission
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (VendorProfile) TableName() string {
	return "vendor_profiles"
}
