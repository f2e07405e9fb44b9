package admin

import (
	"strconv"
	"strings"

	"github.com/jemo-market/api/internal/constants"
	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders pages all orders with filters
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := c.Query("customer_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CustomerID = uint(id)
		}
	}
	if raw := c.Query("vendor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.VendorID = uint(id)
		}
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewMeta(page, pageSize, total))
}

// GetOrder returns one order with items and payment
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "order fetch failed")
		return
	}

	response.Success(c, order)
}

// AdminCancelOrderRequest cancellation payload
type AdminCancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order on behalf of the platform
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminCancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "bad request", err)
			return
		}
	}

	order, err := h.OrderService.CancelOrder(orderID, constants.CancelActorAdmin, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "order cancel failed")
		return
	}

	logger.Infow("admin_order_cancelled",
		"operator_admin_id", currentAdminID(c),
		"order_id", orderID,
	)

	response.Success(c, order)
}

// CompleteOrder settles a delivered order when the customer never confirms
func (h *Handler) CompleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CompleteOrder(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "order complete failed")
		return
	}

	logger.Infow("admin_order_completed",
		"operator_admin_id", currentAdminID(c),
		"order_id", orderID,
	)

	response.Success(c, order)
}

// ConfirmPaymentRequest manual settlement payload
type ConfirmPaymentRequest struct {
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

// ConfirmPayment marks an online payment as received
func (h *Handler) ConfirmPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "bad request", err)
			return
		}
	}

	payment, err := h.PaymentService.Confirm(orderID, req.Reference, req.Note)
	if err != nil {
		respondWithMappedError(c, err, paymentReviewErrorRules, response.CodeInternal, "payment update failed")
		return
	}

	logger.Infow("admin_payment_confirmed",
		"operator_admin_id", currentAdminID(c),
		"order_id", orderID,
	)

	response.Success(c, payment)
}

// FailPaymentRequest manual failure payload
type FailPaymentRequest struct {
	Note string `json:"note"`
}

// FailPayment marks an online payment as not received
func (h *Handler) FailPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FailPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "bad request", err)
			return
		}
	}

	payment, err := h.PaymentService.Fail(orderID, req.Note)
	if err != nil {
		respondWithMappedError(c, err, paymentReviewErrorRules, response.CodeInternal, "payment update failed")
		return
	}

	logger.Infow("admin_payment_failed",
		"operator_admin_id", currentAdminID(c),
		"order_id", orderID,
	)

	response.Success(c, payment)
}
