package admin

import (
	"strings"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListKycQueue pages verification submissions for review
func (h *Handler) ListKycQueue(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	submissions, total, err := h.KycService.ListQueue(repository.KycListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		ProfileType: strings.TrimSpace(c.Query("profile_type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "kyc fetch failed", err)
		return
	}

	response.SuccessWithPage(c, submissions, response.NewMeta(page, pageSize, total))
}

// ApproveKyc approves a pending submission and unlocks the profile
func (h *Handler) ApproveKyc(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.KycService.Approve(adminID, submissionID)
	if err != nil {
		respondWithMappedError(c, err, kycReviewErrorRules, response.CodeInternal, "kyc review failed")
		return
	}

	logger.Infow("admin_kyc_approved",
		"operator_admin_id", adminID,
		"submission_id", submissionID,
	)

	response.Success(c, submission)
}

// RejectKycRequest rejection payload
type RejectKycRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectKyc rejects a pending submission; the reason is mandatory
func (h *Handler) RejectKyc(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectKycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "reject reason required", nil)
		return
	}

	submission, err := h.KycService.Reject(adminID, submissionID, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, kycReviewErrorRules, response.CodeInternal, "kyc review failed")
		return
	}

	logger.Infow("admin_kyc_rejected",
		"operator_admin_id", adminID,
		"submission_id", submissionID,
	)

	response.Success(c, submission)
}
