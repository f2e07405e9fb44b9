package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListDeliveryJobs pages delivery jobs with filters
func (h *Handler) ListDeliveryJobs(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	filter := repository.DeliveryJobListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("agency_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.AgencyID = uint(id)
		}
	}

	jobs, total, err := h.DeliveryJobService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "job fetch failed", err)
		return
	}

	response.SuccessWithPage(c, jobs, response.NewMeta(page, pageSize, total))
}
