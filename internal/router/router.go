// Package router sets up all HTTP routes and middleware chains for the
// catalog admin server. The admin API and the public catalog live under
// /api; everything else is served from the site's public directory.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dianabeauty/internal/handlers"
	"dianabeauty/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, public *handlers.Public, publicDir, corsOrigin string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(corsOrigin))

		// Overrides and product data
		r.Post("/save-product-override", admin.SaveOverride)
		r.Get("/products-data", admin.ProductsData)
		r.Post("/hidden-products", admin.SetHidden)

		// Custom products
		r.Route("/custom-products", func(r chi.Router) {
			r.Post("/", admin.CreateCustomProduct)
			r.Put("/{id}", admin.UpdateCustomProduct)
			r.Delete("/{id}", admin.DeleteCustomProduct)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", admin.CreateCategory)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
		})

		// Image inventory
		r.Post("/upload-images", admin.UploadImages)
		r.Post("/regenerate-images", admin.RegenerateImages)

		// Storefront
		r.Get("/catalog", public.Catalog)
		r.Get("/local-overrides", public.LocalOverrides)
		r.Put("/local-overrides", public.SaveLocalOverrides)
	})

	// Static storefront assets, including uploaded images.
	r.Handle("/*", http.FileServer(http.Dir(publicDir)))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
