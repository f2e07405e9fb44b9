package service

import (
	"strings"
	"time"

	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

// ChatService customer to vendor messaging
type ChatService struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
}

// NewChatService creates the chat service
func NewChatService(conversationRepo repository.ConversationRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository) *ChatService {
	return &ChatService{conversationRepo: conversationRepo, userRepo: userRepo, orderRepo: orderRepo}
}

// ConversationView conversation with the caller's unread count
type ConversationView struct {
	Conversation models.Conversation `json:"conversation"`
	UnreadCount  int64               `json:"unread_count"`
}

// StartConversation finds or creates the thread between a customer and a
// vendor's user account, optionally anchored to an order.
func (s *ChatService) StartConversation(customerID, vendorUserID uint, orderID *uint) (*models.Conversation, error) {
	if customerID == vendorUserID {
		return nil, ErrValidation
	}
	other, err := s.userRepo.GetByID(vendorUserID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, ErrNotFound
	}

	existing, err := s.conversationRepo.GetByPair(customerID, vendorUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if orderID != nil {
		order, err := s.orderRepo.GetByIDAndCustomer(*orderID, customerID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrNotFound
		}
	}

	conversation := &models.Conversation{
		CustomerID:   customerID,
		VendorUserID: vendorUserID,
		OrderID:      orderID,
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// participant checks membership and reports which side the user is on
func participant(conversation *models.Conversation, userID uint) (isCustomer, ok bool) {
	switch userID {
	case conversation.CustomerID:
		return true, true
	case conversation.VendorUserID:
		return false, true
	default:
		return false, false
	}
}

// getOwned loads a conversation the user participates in
func (s *ChatService) getOwned(userID, conversationID uint) (*models.Conversation, bool, error) {
	conversation, err := s.conversationRepo.GetByID(conversationID)
	if err != nil {
		return nil, false, err
	}
	if conversation == nil {
		return nil, false, ErrNotFound
	}
	isCustomer, ok := participant(conversation, userID)
	if !ok {
		return nil, false, ErrForbidden
	}
	return conversation, isCustomer, nil
}

// ListConversations pages the user's threads with unread counts
func (s *ChatService) ListConversations(userID uint, page, pageSize int) ([]ConversationView, int64, error) {
	conversations, total, err := s.conversationRepo.ListByParticipant(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ConversationView, 0, len(conversations))
	for _, c := range conversations {
		since := c.VendorReadAt
		if c.CustomerID == userID {
			since = c.CustomerReadAt
		}
		unread, err := s.conversationRepo.CountUnread(c.ID, userID, since)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, ConversationView{Conversation: c, UnreadCount: unread})
	}
	return views, total, nil
}

// SendMessage appends a message to a thread the user belongs to
func (s *ChatService) SendMessage(userID, conversationID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrValidation
	}
	conversation, _, err := s.getOwned(userID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Body:           body,
	}
	if err := s.conversationRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	now := time.Now()
	conversation.LastMessageAt = &now
	if err := s.conversationRepo.Update(conversation); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages pages a thread's messages and marks the caller's side read
func (s *ChatService) ListMessages(userID, conversationID uint, page, pageSize int) ([]models.Message, int64, error) {
	_, isCustomer, err := s.getOwned(userID, conversationID)
	if err != nil {
		return nil, 0, err
	}

	messages, total, err := s.conversationRepo.ListMessages(repository.MessageListFilter{
		ConversationID: conversationID,
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := s.conversationRepo.MarkRead(conversationID, isCustomer, time.Now()); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkRead stamps the caller's read position explicitly
func (s *ChatService) MarkRead(userID, conversationID uint) error {
	_, isCustomer, err := s.getOwned(userID, conversationID)
	if err != nil {
		return err
	}
	return s.conversationRepo.MarkRead(conversationID, isCustomer, time.Now())
}
