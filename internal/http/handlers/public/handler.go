package public

import "github.com/jemo-market/api/internal/provider"

// Handler storefront and customer API handlers
type Handler struct {
	*provider.Container
}

// New creates the public handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
