package agency

import (
	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/models"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseIDParam(c, name)
}

// currentAgency resolves the caller's agency profile; responds on failure.
func (h *Handler) currentAgency(c *gin.Context) (*models.AgencyProfile, bool) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return nil, false
	}
	profile, err := h.AgencyProfileRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "agency profile fetch failed", err)
		return nil, false
	}
	if profile == nil {
		respondError(c, response.CodeForbidden, "agency profile required", nil)
		return nil, false
	}
	return profile, true
}
