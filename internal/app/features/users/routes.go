// internal/app/features/users/routes.go
package users

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/app/system/ratelimit"
)

// Routes mounts all account routes under the path where the caller mounts it.
// Typically: r.Mount("/users", users.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Signup and login are the unauthenticated write paths, so they get a
	// per-IP rate limit.
	authLimiter := ratelimit.New(10, time.Minute)
	r.Group(func(pub chi.Router) {
		pub.Use(authLimiter.Middleware)
		pub.Post("/signup", h.HandleSignup)
		pub.Post("/login", h.HandleLogin)
	})
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/me", h.ServeMe)
		pr.Put("/me/profile", h.HandleUpdateProfile)
		pr.Post("/me/password", h.HandleChangePassword)
		pr.Get("/me/referrals", h.ServeMyReferrals)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
	})

	return r
}
