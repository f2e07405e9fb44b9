package public

import (
	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// StartConversationRequest chat thread payload
type StartConversationRequest struct {
	VendorUserID uint  `json:"vendor_user_id" binding:"required"`
	OrderID      *uint `json:"order_id"`
}

// StartConversation finds or creates the thread with a vendor's account
func (h *Handler) StartConversation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	conversation, err := h.ChatService.StartConversation(userID, req.VendorUserID, req.OrderID)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternal, "conversation start failed")
		return
	}

	response.Success(c, conversation)
}

// ListConversations pages the caller's threads with unread counts
func (h *Handler) ListConversations(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	conversations, total, err := h.ChatService.ListConversations(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "conversation fetch failed", err)
		return
	}

	response.SuccessWithPage(c, conversations, response.NewMeta(page, pageSize, total))
}

// SendMessageRequest chat message payload
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// SendMessage appends a message to a thread the caller participates in
func (h *Handler) SendMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	message, err := h.ChatService.SendMessage(userID, conversationID, req.Body)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternal, "message send failed")
		return
	}

	response.Created(c, message)
}

// ListMessages pages a thread and marks the caller's side read
func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	messages, total, err := h.ChatService.ListMessages(userID, conversationID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternal, "message fetch failed")
		return
	}

	response.SuccessWithPage(c, messages, response.NewMeta(page, pageSize, total))
}

// MarkConversationRead updates the caller's read cursor
func (h *Handler) MarkConversationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ChatService.MarkRead(userID, conversationID); err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternal, "mark read failed")
		return
	}

	response.Success(c, gin.H{"read": true})
}
