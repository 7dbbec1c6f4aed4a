// internal/app/features/conversations/routes.go
package conversations

import (
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the messaging routes. Typically:
// r.Mount("/conversations", conversations.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleOpen)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}/messages", h.ServeMessages)
		pr.Post("/{id}/messages", h.HandleSend)
		pr.Post("/{id}/viewed", h.HandleMarkViewed)
	})

	return r
}
