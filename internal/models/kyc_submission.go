package models

import (
	"time"

	"gorm.io/gorm"
)

// KycSubmission identity document submitted for a vendor or agency profile
type KycSubmission struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	ProfileType  string         `gorm:"index;not null" json:"profile_type"` // vendor or agency
	DocumentType string         `gorm:"not null" json:"document_type"`
	DocumentRef  string         `gorm:"not null" json:"document_ref"` // stored file reference
	Status       string         `gorm:"index;not null;default:'pending'" json:"status"`
	RejectReason string         `gorm:"type:text" json:"reject_reason,omitempty"`
	ReviewedBy   *uint          `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (KycSubmission) TableName() string {
	return "kyc_submissions"
}
