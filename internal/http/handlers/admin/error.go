package admin

import (
	"errors"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError maps a service error to an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var kycReviewErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "submission not found"},
	{target: service.ErrRejectReasonMissing, code: response.CodeBadRequest, msg: "reject reason required"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "submission already reviewed"},
}

var payoutReviewErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "payout not found"},
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "reject reason required"},
	{target: service.ErrRejectReasonMissing, code: response.CodeBadRequest, msg: "reject reason required"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "payout already settled"},
}

var disputeCloseErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "dispute not found"},
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "resolution note required"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "dispute already closed"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "order can no longer be cancelled"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "order is not in the required status"},
}

var paymentReviewErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "payment not found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "payment is not awaiting review"},
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "category not found"},
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid category payload"},
	{target: service.ErrConflict, code: response.CodeConflict, msg: "slug already exists"},
}

var userModerationErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "user not found"},
}
