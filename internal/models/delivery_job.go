package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryJob platform delivery task created for jemo_rider orders
type DeliveryJob struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Status      string         `gorm:"index;not null;default:'open'" json:"status"`
	PickupCity  string         `gorm:"index;not null" json:"pickup_city"`
	DropoffCity string         `gorm:"index;not null" json:"dropoff_city"`
	Address     string         `gorm:"type:text" json:"address"`
	Fee         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fee"`
	AgencyID    *uint          `gorm:"index" json:"agency_id,omitempty"` // agency profile id, nil while open
	AcceptedAt  *time.Time     `gorm:"index" json:"accepted_at,omitempty"`
	DeliveredAt *time.Time     `gorm:"index" json:"delivered_at,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (DeliveryJob) TableName() string {
	return "delivery_jobs"
}
