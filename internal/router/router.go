// Package router sets up the HTTP routes and middleware chain for the
// contentpress API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"contentpress/internal/handlers"
	"contentpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. uploadDir, when non-empty, is served statically
// under /uploads/ (the local storage backend); with S3 storage the image
// references point at the bucket and no static mount is needed.
func New(content *handlers.Content, uploadDir string) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check.
	r.Get("/health", healthHandler)

	// Content API.
	r.Route("/api/content", func(r chi.Router) {
		r.Post("/", content.Create)
		r.Get("/", content.List)
		r.Get("/slug/{slug}", content.GetBySlug)
		r.Get("/{id}", content.GetByID)
		r.Put("/{id}", content.Update)
		r.Delete("/{id}", content.Delete)
		r.Patch("/{id}/remove-image", content.RemoveImage)
	})

	// Uploaded images, served as static files.
	if uploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			fs.ServeHTTP(w, r)
		})
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
