package health

import "github.com/go-chi/chi/v5"

// Routes mounts the health check. Typically: r.Mount("/health", health.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
