package models

import (
	"time"

	"gorm.io/gorm"
)

// Product vendor listing with its delivery configuration
type Product struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	VendorID    uint        `gorm:"index;not null" json:"vendor_id"` // vendor profile id
	CategoryID  *uint       `gorm:"index" json:"category_id,omitempty"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Images      StringArray `gorm:"type:json" json:"images"`
	Price       Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock       int         `gorm:"not null;default:0" json:"stock"`
	Active      bool        `gorm:"not null;default:true;index" json:"active"`

	// delivery configuration
	DeliveryType    string `gorm:"not null;default:'jemo_rider'" json:"delivery_type"` // jemo_rider or vendor_self
	FreeDelivery    bool   `gorm:"not null;default:false" json:"free_delivery"`
	FlatDeliveryFee *Money `gorm:"type:decimal(20,2)" json:"flat_delivery_fee,omitempty"`
	SameCityFee     *Money `gorm:"type:decimal(20,2)" json:"same_city_fee,omitempty"`
	OtherCityFee    *Money `gorm:"type:decimal(20,2)" json:"other_city_fee,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Product) TableName() string {
	return "products"
}
