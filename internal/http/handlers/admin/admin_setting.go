package admin

import (
	"strings"

	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"

	"github.com/gin-gonic/gin"
)

// GetSetting returns a raw settings row by key
func (h *Handler) GetSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "setting key required", nil)
		return
	}

	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "setting fetch failed", err)
		return
	}
	if value == nil {
		respondError(c, response.CodeNotFound, "setting not found", nil)
		return
	}

	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSettingRequest settings payload
type UpdateSettingRequest struct {
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateSetting upserts a settings row
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "setting key required", nil)
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	value, err := h.SettingService.Update(key, req.Value)
	if err != nil {
		respondError(c, response.CodeInternal, "setting update failed", err)
		return
	}

	logger.Infow("admin_setting_updated",
		"operator_admin_id", currentAdminID(c),
		"key", key,
	)

	response.Success(c, gin.H{"key": key, "value": value})
}
