package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation customer and vendor message thread, optionally tied to an order
type Conversation struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CustomerID     uint           `gorm:"uniqueIndex:idx_conversations_pair;not null" json:"customer_id"`
	VendorUserID   uint           `gorm:"uniqueIndex:idx_conversations_pair;not null" json:"vendor_user_id"`
	OrderID        *uint          `gorm:"index" json:"order_id,omitempty"`
	LastMessageAt  *time.Time     `gorm:"index" json:"last_message_at,omitempty"`
	CustomerReadAt *time.Time     `json:"customer_read_at,omitempty"`
	VendorReadAt   *time.Time     `json:"vendor_read_at,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Conversation) TableName() string {
	return "conversations"
}

// Message single chat message
type Message struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	ConversationID uint           `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint           `gorm:"index;not null" json:"sender_id"`
	Body           string         `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Message) TableName() string {
	return "messages"
}
