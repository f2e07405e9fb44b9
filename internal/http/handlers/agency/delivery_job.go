package agency

import (
	"errors"
	"strings"

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

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var jobAcceptErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "delivery job not found"},
	{target: service.ErrKycNotApproved, code: response.CodeForbidden, msg: "verification approval required"},
	{target: service.ErrJobAlreadyTaken, code: response.CodeConflict, msg: "delivery job already taken"},
	{target: service.ErrOutsideCoverage, code: response.CodeForbidden, msg: "pickup city outside coverage area"},
}

var jobDeliverErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "delivery job not found"},
	{target: service.ErrKycNotApproved, code: response.CodeForbidden, msg: "verification approval required"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "delivery job belongs to another agency"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "delivery job is not accepted"},
}

var jobLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "delivery job not found"},
	{target: service.ErrKycNotApproved, code: response.CodeForbidden, msg: "verification approval required"},
}

// ListAvailableJobs pages open jobs picking up inside the caller's coverage
func (h *Handler) ListAvailableJobs(c *gin.Context) {
	profile, ok := h.currentAgency(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	jobs, total, err := h.DeliveryJobService.ListAvailable(profile.ID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, jobLookupErrorRules, response.CodeInternal, "job fetch failed")
		return
	}

	response.SuccessWithPage(c, jobs, response.NewMeta(page, pageSize, total))
}

// AcceptJob claims an open job; the first acceptor wins
func (h *Handler) AcceptJob(c *gin.Context) {
	profile, ok := h.currentAgency(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.DeliveryJobService.AcceptJob(profile.ID, jobID)
	if err != nil {
		respondWithMappedError(c, err, jobAcceptErrorRules, response.CodeInternal, "job accept failed")
		return
	}

	response.Success(c, job)
}

// MarkJobDelivered completes an accepted job and settles the linked order
func (h *Handler) MarkJobDelivered(c *gin.Context) {
	profile, ok := h.currentAgency(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.DeliveryJobService.MarkDelivered(profile.ID, jobID)
	if err != nil {
		respondWithMappedError(c, err, jobDeliverErrorRules, response.CodeInternal, "job update failed")
		return
	}

	response.Success(c, job)
}

// GetJob returns a job the caller owns or could accept
func (h *Handler) GetJob(c *gin.Context) {
	profile, ok := h.currentAgency(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.DeliveryJobService.GetForAgency(profile.ID, jobID)
	if err != nil {
		respondWithMappedError(c, err, jobLookupErrorRules, response.CodeInternal, "job fetch failed")
		return
	}

	response.Success(c, job)
}

// ListJobHistory pages the jobs the caller has claimed
func (h *Handler) ListJobHistory(c *gin.Context) {
	profile, ok := h.currentAgency(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	jobs, total, err := h.DeliveryJobService.ListHistory(profile.ID, strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, jobLookupErrorRules, response.CodeInternal, "job fetch failed")
		return
	}

	response.SuccessWithPage(c, jobs, response.NewMeta(page, pageSize, total))
}
