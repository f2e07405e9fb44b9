package public

import (
	"errors"
	"time"

	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest registration payload
type UserRegisterRequest struct {
	Phone          string   `json:"phone" binding:"required"`
	Password       string   `json:"password" binding:"required"`
	DisplayName    string   `json:"display_name"`
	Role           string   `json:"role"`
	City           string   `json:"city"`
	ShopName       string   `json:"shop_name"`
	CoverageCities []string `json:"coverage_cities"`
}

// UserRegister registers an account, optionally with a vendor or agency profile
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Phone:          req.Phone,
		Password:       req.Password,
		DisplayName:    req.DisplayName,
		Role:           req.Role,
		City:           req.City,
		ShopName:       req.ShopName,
		CoverageCities: req.CoverageCities,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			respondError(c, response.CodeBadRequest, "invalid phone number", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "password does not meet policy", nil)
		case errors.Is(err, service.ErrPhoneTaken):
			respondError(c, response.CodeConflict, "phone already registered", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "invalid registration payload", nil)
		default:
			respondError(c, response.CodeInternal, "registration failed", err)
		}
		return
	}

	response.Created(c, sessionResponse(user, token, expiresAt))
}

// UserLoginRequest login payload
type UserLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin authenticates by phone and password
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid phone or password", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeUnauthorized, "account disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, sessionResponse(user, token, expiresAt))
}

// UpgradeRoleRequest role upgrade payload
type UpgradeRoleRequest struct {
	Role           string   `json:"role" binding:"required"`
	ShopName       string   `json:"shop_name"`
	CoverageCities []string `json:"coverage_cities"`
}

// UpgradeRole turns a customer into a vendor or rider/agency
func (h *Handler) UpgradeRole(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpgradeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.UpgradeRole(service.UpgradeRoleInput{
		UserID:         userID,
		Role:           req.Role,
		ShopName:       req.ShopName,
		CoverageCities: req.CoverageCities,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		case errors.Is(err, service.ErrConflict):
			respondError(c, response.CodeConflict, "account already upgraded", nil)
		case errors.Is(err, service.ErrValidation):
			respondError(c, response.CodeBadRequest, "unsupported role", nil)
		default:
			respondError(c, response.CodeInternal, "role upgrade failed", err)
		}
		return
	}

	response.Success(c, sessionResponse(user, token, expiresAt))
}

// GetCurrentUser returns the authenticated profile
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "account not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}

	response.Success(c, user)
}

// UserProfileUpdateRequest profile update payload
type UserProfileUpdateRequest struct {
	DisplayName string `json:"display_name"`
	City        string `json:"city"`
}

// UpdateUserProfile updates display name and city
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, req.DisplayName, req.City)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "account not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}

	response.Success(c, user)
}

// ChangeUserPasswordRequest password change payload
type ChangeUserPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeUserPassword changes the password of the authenticated user
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangeUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "old password is incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "password does not meet policy", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}

func sessionResponse(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}
