package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPayouts pages withdrawal requests
func (h *Handler) ListPayouts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	filter := repository.PayoutListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("vendor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.VendorID = uint(id)
		}
	}

	payouts, total, err := h.WalletService.ListPayouts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "payout fetch failed", err)
		return
	}

	response.SuccessWithPage(c, payouts, response.NewMeta(page, pageSize, total))
}

// MarkPayoutPaid settles a requested payout after the bank transfer
func (h *Handler) MarkPayoutPaid(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	payoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payout, err := h.WalletService.MarkPayoutPaid(adminID, payoutID)
	if err != nil {
		respondWithMappedError(c, err, payoutReviewErrorRules, response.CodeInternal, "payout update failed")
		return
	}

	logger.Infow("admin_payout_paid",
		"operator_admin_id", adminID,
		"payout_id", payoutID,
	)

	response.Success(c, payout)
}

// RejectPayoutRequest rejection payload
type RejectPayoutRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectPayout declines a requested payout and refunds the wallet
func (h *Handler) RejectPayout(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	payoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "reject reason required", nil)
		return
	}

	payout, err := h.WalletService.RejectPayout(adminID, payoutID, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, payoutReviewErrorRules, response.CodeInternal, "payout update failed")
		return
	}

	logger.Infow("admin_payout_rejected",
		"operator_admin_id", adminID,
		"payout_id", payoutID,
	)

	response.Success(c, payout)
}
