package admin

import "github.com/jemo-market/api/internal/provider"

// Handler back office API handlers
type Handler struct {
	*provider.Container
}

// New creates the admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
