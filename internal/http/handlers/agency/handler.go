package agency

import "github.com/jemo-market/api/internal/provider"

// Handler rider and delivery agency API handlers
type Handler struct {
	*provider.Container
}

// New creates the agency handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
