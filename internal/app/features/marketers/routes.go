// internal/app/features/marketers/routes.go
package marketers

import (
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the marketer admin routes. Typically:
// r.Mount("/marketers", marketers.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(models.AccountTypeAdmin))

		pr.Post("/{id}/promote", h.HandlePromote)
	})

	return r
}
