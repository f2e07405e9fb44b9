package public

import (
	"errors"

	handlershared "github.com/jemo-market/api/internal/http/handlers/shared"
	"github.com/jemo-market/api/internal/http/response"
	"github.com/jemo-market/api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddFavorite bookmarks a visible product
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.FavoriteService.Add(userID, productID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "favorite save failed", err)
		return
	}

	response.Success(c, gin.H{"favorited": true})
}

// RemoveFavorite drops a bookmark, idempotent
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.FavoriteService.Remove(userID, productID); err != nil {
		respondError(c, response.CodeInternal, "favorite remove failed", err)
		return
	}

	response.Success(c, gin.H{"favorited": false})
}

// ListFavorites pages the user's bookmarks with current product data
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	entries, total, err := h.FavoriteService.List(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "favorite fetch failed", err)
		return
	}

	response.SuccessWithPage(c, entries, response.NewMeta(page, pageSize, total))
}
