// Package http is the REST adapter: routing, middleware and the JSON
// error envelope.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openlance/openlance/internal/application"
	"github.com/openlance/openlance/internal/domain"
)

// Handler binds HTTP routes to application use cases.
type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// RateLimits groups the limit classes applied by the router. Upload is
// configured alongside the others so the attachment endpoints can adopt
// it when they land.
type RateLimits struct {
	API    RateLimit
	Auth   RateLimit
	Search RateLimit
	Upload RateLimit
}

// DefaultRateLimits mirrors production traffic shaping.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		API:    RateLimit{Limit: 100, Window: time.Minute},
		Auth:   RateLimit{Limit: 5, Window: 15 * time.Minute},
		Search: RateLimit{Limit: 20, Window: time.Minute},
		Upload: RateLimit{Limit: 5, Window: time.Minute},
	}
}

// NewRouter assembles the middleware stack and the versioned API
// surface. The health endpoint sits outside the rate-limited tree.
func NewRouter(handler *Handler, limiter *RateLimiter, limits RateLimits, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware(allowedOrigins))

	r.Get("/health", handler.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware("api", limits.API))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware("auth", limits.Auth))
				r.Post("/register", handler.register)
				r.Post("/login", handler.login)
				r.Post("/refresh", handler.refresh)
			})
			r.Post("/logout", handler.logout)
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Get("/me", handler.me)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(handler.optionalAuthMiddleware)
				r.With(limiter.Middleware("search", limits.Search)).Get("/", handler.listProjects)
				r.Get("/{project_id}", handler.getProject)
			})
			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.With(requireUserType(domain.UserTypeCompany)).Post("/", handler.createProject)
				r.Put("/{project_id}", handler.updateProject)
				r.Post("/{project_id}/publish", handler.publishProject)
				r.Delete("/{project_id}", handler.deleteProject)
			})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
