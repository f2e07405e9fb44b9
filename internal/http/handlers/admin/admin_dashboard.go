package admin

import (
	"errors"
	"strings"

	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

func dashboardQueryInput(c *gin.Context) service.DashboardQueryInput {
	return service.DashboardQueryInput{
		Range:        strings.TrimSpace(c.DefaultQuery("range", "today")),
		ForceRefresh: c.Query("force_refresh") == "true",
	}
}

// GetDashboardOverview returns order, payment and backlog counters
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), dashboardQueryInput(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "unsupported range", nil)
			return
		}
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}

	response.Success(c, overview)
}

// GetDashboardTrends returns per-day order counts for the window
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	trends, err := h.DashboardService.GetTrends(c.Request.Context(), dashboardQueryInput(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, response.CodeBadRequest, "unsupported range", nil)
			return
		}
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}

	response.Success(c, trends)
}
