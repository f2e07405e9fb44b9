package public

import (
	"errors"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error to an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
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

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid order payload"},
	{target: service.ErrNotFound, code: response.CodeBadRequest, msg: "one or more products not found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, msg: "product unavailable"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrDeliveryUnavailable, code: response.CodeBadRequest, msg: "delivery not available for destination"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
}

var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "order can no longer be cancelled"},
}

var orderCompleteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "order is not delivered yet"},
}

var kycSubmitErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "document type and reference required"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "account has no reviewable profile"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "account not found"},
}

var disputeOpenErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "dispute subject required"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrDuplicateDispute, code: response.CodeConflict, msg: "order already has an open dispute"},
}

var disputeLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "dispute not found"},
}

var chatErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid chat payload"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "conversation not found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "not a participant of this conversation"},
}
