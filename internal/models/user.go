package models

import (
	"time"

	"gorm.io/gorm"
)

// User marketplace account (customer, vendor, rider or agency)
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Phone              string         `gorm:"uniqueIndex;not null" json:"phone"` // normalized +251 form
	PasswordHash       string         `gorm:"not null" json:"-"`
	DisplayName        string         `gorm:"default:''" json:"display_name"`
	Role               string         `gorm:"index;not null" json:"role"`
	City               string         `gorm:"index;default:''" json:"city"`
	Status             string         `gorm:"default:'active'" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (User) TableName() string {
	return "users"
}
