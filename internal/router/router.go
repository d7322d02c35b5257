// Package router sets up all HTTP routes and middleware chains for the
// Infogen API. Catalog and generation routes are public; brands, projects
// and animation scripts require an authenticated caller.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"infogen/internal/handlers"
	"infogen/internal/middleware"
	"infogen/internal/session"
)

// Handlers bundles the handler groups served by the router.
type Handlers struct {
	Auth      *handlers.Auth
	Templates *handlers.Templates
	Brands    *handlers.Brands
	Projects  *handlers.Projects
	Generate  *handlers.Generate
}

// Options configure the global middleware chain.
type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
	// Limiter throttles the generation endpoints. Nil disables throttling.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions *session.Store, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.LoadAuth(sessions))
	r.Use(middleware.NewCSRF(opts.SecureCookies))

	// Health check: no auth.
	r.Get("/health", healthHandler)

	throttle := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		throttle = opts.Limiter.Middleware
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RequireAuth).Post("/session", h.Auth.CreateSession)
			r.Delete("/session", h.Auth.DestroySession)
			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Get("/templates", h.Templates.List)
		r.Get("/templates/{id}", h.Templates.Get)

		r.Post("/ai/suggestions", h.Generate.Suggestions)

		// Generation: optional auth, throttled per client.
		r.Group(func(r chi.Router) {
			r.Use(throttle)
			r.Post("/infographics", h.Generate.BuildInfographic)
			r.Post("/generate", h.Generate.Export)
			r.With(middleware.RequireAuth).Post("/generate/animation-script", h.Generate.AnimationScript)
		})

		// Owner-scoped resources.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", h.Brands.List)
				r.Post("/", h.Brands.Create)
				r.Put("/{id}", h.Brands.Update)
				r.Delete("/{id}", h.Brands.Delete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Projects.List)
				r.Post("/", h.Projects.Create)
				r.Get("/{id}", h.Projects.Get)
				r.Put("/{id}", h.Projects.Update)
				r.Delete("/{id}", h.Projects.Delete)
				r.Get("/{id}/preview", h.Projects.Preview)
				r.With(throttle).Post("/{id}/infographic", h.Projects.Infographic)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
