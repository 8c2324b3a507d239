package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает все маршруты. Блог и health публичные,
// остальное за аутентификацией
func NewRouter(
	todos *TodoHandler,
	reviews *ReviewHandler,
	blog *BlogHandler,
	stats *StatsHandler,
	authenticator func(http.Handler) http.Handler,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/", blog.List)
		r.Get("/{slug}", blog.Get)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Route("/api/todos", func(r chi.Router) {
			r.Post("/", todos.Create)
			r.Get("/", todos.List)
			r.Post("/reorder", todos.Reorder)
			r.Get("/{id}", todos.Get)
			r.Patch("/{id}", todos.Update)
			r.Delete("/{id}", todos.Delete)
		})

		r.Route("/api/reviews", func(r chi.Router) {
			r.Get("/", reviews.List)
			r.Post("/", reviews.Upsert)
			r.Get("/file", reviews.GetByPath)
			r.Get("/{id}/audit", reviews.Audit)
		})

		r.Get("/api/drafts", reviews.Drafts)
		r.Get("/api/stats", stats.Stats)
	})

	return r
}
