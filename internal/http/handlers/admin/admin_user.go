package admin

import (
	"errors"
	"strings"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/logger"
	"github.com/jemo-market/api/internal/repository"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUsers pages marketplace accounts
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	users, total, err := h.UserAdminService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.SuccessWithPage(c, users, response.NewMeta(page, pageSize, total))
}

// GetUser returns one account
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserAdminService.Get(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.Success(c, user)
}

// DisableUser blocks an account and revokes its live tokens
func (h *Handler) DisableUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserAdminService.Disable(userID)
	if err != nil {
		respondWithMappedError(c, err, userModerationErrorRules, response.CodeInternal, "user update failed")
		return
	}

	logger.Infow("admin_user_disabled",
		"operator_admin_id", currentAdminID(c),
		"user_id", userID,
	)

	response.Success(c, user)
}

// EnableUser reinstates a disabled account
func (h *Handler) EnableUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserAdminService.Enable(userID)
	if err != nil {
		respondWithMappedError(c, err, userModerationErrorRules, response.CodeInternal, "user update failed")
		return
	}

	logger.Infow("admin_user_enabled",
		"operator_admin_id", currentAdminID(c),
		"user_id", userID,
	)

	response.Success(c, user)
}
