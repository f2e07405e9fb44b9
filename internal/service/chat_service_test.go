package service

import (
	"errors"
	"testing"

	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"gorm.io/gorm"
)

func setupChatTest(t *testing.T) (*ChatService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, "chat_service_test")
	return NewChatService(
		repository.NewConversationRepository(db),
		repository.NewUserRepository(db),
		repository.NewOrderRepository(db),
	), db
}

func TestStartConversation(t *testing.T) {
	svc, db := setupChatTest(t)
	customer := createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")

	conversation, err := svc.StartConversation(customer.ID, vendor.UserID, nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if conversation.CustomerID != customer.ID || conversation.VendorUserID != vendor.UserID {
		t.Fatalf("unexpected conversation: %+v", conversation)
	}

	// starting the same pair again returns the existing thread
	again, err := svc.StartConversation(customer.ID, vendor.UserID, nil)
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if again.ID != conversation.ID {
		t.Fatalf("expected the same conversation, got %d and %d", conversation.ID, again.ID)
	}

	if _, err := svc.StartConversation(customer.ID, customer.ID, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("self conversation must fail, got: %v", err)
	}
	if _, err := svc.StartConversation(customer.ID, 99999, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got: %v", err)
	}
}

func TestStartConversationWithForeignOrder(t *testing.T) {
	svc, db := setupChatTest(t)
	customer := createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")

	orderID := uint(12345)
	if _, err := svc.StartConversation(customer.ID, vendor.UserID, &orderID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for order the customer does not own, got: %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	svc, db := setupChatTest(t)
	customer := createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")
	conversation, err := svc.StartConversation(customer.ID, vendor.UserID, nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	message, err := svc.SendMessage(customer.ID, conversation.ID, "is this still in stock?")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if message.SenderID != customer.ID || message.Body != "is this still in stock?" {
		t.Fatalf("unexpected message: %+v", message)
	}

	// empty body rejected
	if _, err := svc.SendMessage(customer.ID, conversation.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}

	// outsiders cannot post
	stranger := createCustomer(t, db)
	if _, err := svc.SendMessage(stranger.ID, conversation.ID, "hello"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}

	// last message stamp moves
	var reloaded models.Conversation
	if err := db.First(&reloaded, conversation.ID).Error; err != nil {
		t.Fatalf("reload conversation failed: %v", err)
	}
	if reloaded.LastMessageAt == nil {
		t.Fatalf("last_message_at not stamped")
	}
}

func TestUnreadCountsAndMarkRead(t *testing.T) {
	svc, db := setupChatTest(t)
	customer := createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")
	conversation, err := svc.StartConversation(customer.ID, vendor.UserID, nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := svc.SendMessage(customer.ID, conversation.ID, "first"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendMessage(customer.ID, conversation.ID, "second"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// the vendor side has two unread
	views, total, err := svc.ListConversations(vendor.UserID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("expected one conversation, got %d", total)
	}
	if views[0].UnreadCount != 2 {
		t.Fatalf("unread = %d, want 2", views[0].UnreadCount)
	}

	// reading the thread clears the counter
	if _, _, err := svc.ListMessages(vendor.UserID, conversation.ID, 1, 20); err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	views, _, err = svc.ListConversations(vendor.UserID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if views[0].UnreadCount != 0 {
		t.Fatalf("unread = %d after read, want 0", views[0].UnreadCount)
	}

	// explicit mark read for the customer side
	if err := svc.MarkRead(customer.ID, conversation.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	stranger := createCustomer(t, db)
	if err := svc.MarkRead(stranger.ID, conversation.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestListMessagesScoping(t *testing.T) {
	svc, db := setupChatTest(t)
	customer := createCustomer(t, db)
	vendor := createVendor(t, db, "Addis Ababa")
	conversation, err := svc.StartConversation(customer.ID, vendor.UserID, nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	stranger := createCustomer(t, db)
	if _, _, err := svc.ListMessages(stranger.ID, conversation.ID, 1, 20); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
	if _, _, err := svc.ListMessages(customer.ID, 99999, 1, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
