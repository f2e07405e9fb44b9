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

// ListDisputes pages disputes with filters
func (h *Handler) ListDisputes(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	filter := repository.DisputeListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("order_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.OrderID = uint(id)
		}
	}

	disputes, total, err := h.DisputeService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "dispute fetch failed", err)
		return
	}

	response.SuccessWithPage(c, disputes, response.NewMeta(page, pageSize, total))
}

// GetDispute fetches a single dispute
func (h *Handler) GetDispute(c *gin.Context) {
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dispute, err := h.DisputeService.GetAdmin(disputeID)
	if err != nil {
		respondWithMappedError(c, err, disputeCloseErrorRules, response.CodeInternal, "dispute fetch failed")
		return
	}

	response.Success(c, dispute)
}

// CloseDisputeRequest resolution payload
type CloseDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// ResolveDispute closes a dispute in the customer's favour
func (h *Handler) ResolveDispute(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CloseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "resolution note required", nil)
		return
	}

	dispute, err := h.DisputeService.Resolve(adminID, disputeID, req.Resolution)
	if err != nil {
		respondWithMappedError(c, err, disputeCloseErrorRules, response.CodeInternal, "dispute update failed")
		return
	}

	logger.Infow("admin_dispute_resolved",
		"operator_admin_id", adminID,
		"dispute_id", disputeID,
	)

	response.Success(c, dispute)
}

// RejectDispute closes a dispute without action
func (h *Handler) RejectDispute(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CloseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "resolution note required", nil)
		return
	}

	dispute, err := h.DisputeService.Reject(adminID, disputeID, req.Resolution)
	if err != nil {
		respondWithMappedError(c, err, disputeCloseErrorRules, response.CodeInternal, "dispute update failed")
		return
	}

	logger.Infow("admin_dispute_rejected",
		"operator_admin_id", adminID,
		"dispute_id", disputeID,
	)

	response.Success(c, dispute)
}
