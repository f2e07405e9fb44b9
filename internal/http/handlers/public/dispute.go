package public

import (
	"strings"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// OpenDisputeRequest dispute payload
type OpenDisputeRequest struct {
	Subject string `json:"subject" binding:"required"`
	Detail  string `json:"detail"`
}

// OpenDispute raises a dispute against one of the customer's orders
func (h *Handler) OpenDispute(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	dispute, err := h.DisputeService.Open(userID, orderID, req.Subject, req.Detail)
	if err != nil {
		respondWithMappedError(c, err, disputeOpenErrorRules, response.CodeInternal, "dispute open failed")
		return
	}

	response.Created(c, dispute)
}

// ListMyDisputes pages the customer's disputes
func (h *Handler) ListMyDisputes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	disputes, total, err := h.DisputeService.ListForCustomer(userID, strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "dispute fetch failed", err)
		return
	}

	response.SuccessWithPage(c, disputes, response.NewMeta(page, pageSize, total))
}

// GetMyDispute returns one of the customer's disputes
func (h *Handler) GetMyDispute(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	disputeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dispute, err := h.DisputeService.GetForCustomer(userID, disputeID)
	if err != nil {
		respondWithMappedError(c, err, disputeLookupErrorRules, response.CodeInternal, "dispute fetch failed")
		return
	}

	response.Success(c, dispute)
}
