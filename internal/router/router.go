package router

import (
	"net/http"

	"github.com/Tent9481/product-apis/internal/handler"
	"github.com/Tent9481/product-apis/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Product *handler.ProductHandler
	Health  *handler.HealthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> Recovery -> Logging -> CORS -> Metrics -> APIKeyAuth
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/electronics", h.Catalog.Electronics)
	r.Get("/snapshot", h.Catalog.Snapshot)
	r.Get("/snapshot/paged", h.Catalog.SnapshotPaged)
	r.Get("/merged", h.Catalog.Merged)
	r.Get("/list", h.Catalog.List)
	r.Get("/products", h.Catalog.Products)

	r.Post("/create", h.Product.Create)
	r.Put("/update/{id}", h.Product.Update)
	r.Delete("/delete/{id}", h.Product.Delete)

	return r
}
