package repository

import (
	"errors"
	"time"

	"github.com/jemo-market/api/internal/models"

	"gorm.io/gorm"
)

// ConversationRepository conversation and message data access
type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	GetByID(id uint) (*models.Conversation, error)
	GetByPair(customerID, vendorUserID uint) (*models.Conversation, error)
	ListByParticipant(userID uint, page, pageSize int) ([]models.Conversation, int64, error)
	Update(conversation *models.Conversation) error
	MarkRead(id uint, asCustomer bool, at time.Time) error
	CreateMessage(message *models.Message) error
	ListMessages(filter MessageListFilter) ([]models.Message, int64, error)
	CountUnread(conversationID uint, excludeSenderID uint, since *time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormConversationRepository
}

// GormConversationRepository GORM implementation
type GormConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates the conversation repository
func NewConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// WithTx binds a transaction
func (r *GormConversationRepository) WithTx(tx *gorm.DB) *GormConversationRepository {
	if tx == nil {
		return r
	}
	return &GormConversationRepository{db: tx}
}

// Create inserts a conversation
func (r *GormConversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

// GetByID fetches a conversation by id
func (r *GormConversationRepository) GetByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// GetByPair fetches the conversation between a customer and a vendor user
func (r *GormConversationRepository) GetByPair(customerID, vendorUserID uint) (*models.Conversation, error) {
	if customerID == 0 || vendorUserID == 0 {
		return nil, nil
	}
	var conversation models.Conversation
	err := r.db.
		Where("customer_id = ? AND vendor_user_id = ?", customerID, vendorUserID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// ListByParticipant pages conversations either side of which is the user
func (r *GormConversationRepository) ListByParticipant(userID uint, page, pageSize int) ([]models.Conversation, int64, error) {
	query := r.db.Model(&models.Conversation{}).
		Where("customer_id = ? OR vendor_user_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("last_message_at DESC NULLS LAST, id DESC"), page, pageSize)

	var conversations []models.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// Update saves a conversation
func (r *GormConversationRepository) Update(conversation *models.Conversation) error {
	return r.db.Save(conversation).Error
}

// MarkRead stamps the reader's side of the thread
func (r *GormConversationRepository) MarkRead(id uint, asCustomer bool, at time.Time) error {
	column := "vendor_read_at"
	if asCustomer {
		column = "customer_read_at"
	}
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update(column, at).Error
}

// CreateMessage appends a message
func (r *GormConversationRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListMessages pages messages newest first
func (r *GormConversationRepository) ListMessages(filter MessageListFilter) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).
		Where("conversation_id = ?", filter.ConversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// CountUnread counts the other side's messages newer than the reader's last-read mark
func (r *GormConversationRepository) CountUnread(conversationID uint, excludeSenderID uint, since *time.Time) (int64, error) {
	query := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, excludeSenderID)
	if since != nil {
		query = query.Where("created_at > ?", since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
