// internal/app/features/providers/routes.go
package providers

import (
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the matching routes. Typically:
// r.Mount("/providers", providers.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/match", h.ServeMatch)
	})

	return r
}
