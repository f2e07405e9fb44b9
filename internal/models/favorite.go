package models

import "time"

// Favorite user bookmark on a product
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_favorites_user_product;not null" json:"product_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName table name
func (Favorite) TableName() string {
	return "favorites"
}
