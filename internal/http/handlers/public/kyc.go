package public

import (
	"errors"

	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// KycSubmitRequest verification document payload
type KycSubmitRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	DocumentRef  string `json:"document_ref" binding:"required"`
}

// SubmitKyc files a verification document for the caller's vendor or agency profile
func (h *Handler) SubmitKyc(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req KycSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	submission, err := h.KycService.Submit(service.SubmitInput{
		UserID:       userID,
		DocumentType: req.DocumentType,
		DocumentRef:  req.DocumentRef,
	})
	if err != nil {
		respondWithMappedError(c, err, kycSubmitErrorRules, response.CodeInternal, "kyc submit failed")
		return
	}

	response.Created(c, submission)
}

// GetKycStatus returns the caller's latest verification submission
func (h *Handler) GetKycStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	submission, err := h.KycService.Status(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			respondError(c, response.CodeForbidden, "account has no reviewable profile", nil)
			return
		}
		respondError(c, response.CodeInternal, "kyc status fetch failed", err)
		return
	}
	if submission == nil {
		response.Success(c, gin.H{"submitted": false})
		return
	}

	response.Success(c, submission)
}
