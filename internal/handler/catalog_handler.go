package handler

import (
	"context"
	"net/http"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/service"
	"github.com/rs/zerolog"
)

// CatalogHandler handles the read-only list endpoints.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Electronics handles GET /electronics. Pagination is optional.
func (h *CatalogHandler) Electronics(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, catalog.PageOptional, h.service.ListElectronics, "Failed to fetch electronics", h.logger)
}

// Snapshot handles GET /snapshot. Pagination parameters are ignored.
func (h *CatalogHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, catalog.PageNone, h.service.ListSnapshot, "Failed to read snapshot", h.logger)
}

// SnapshotPaged handles GET /snapshot/paged. Pagination is required.
func (h *CatalogHandler) SnapshotPaged(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, catalog.PageRequired, h.service.ListSnapshot, "Failed to read snapshot", h.logger)
}

// Merged handles GET /merged. Pagination is required.
func (h *CatalogHandler) Merged(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, catalog.PageRequired, h.service.ListMerged, "Failed to fetch data", h.logger)
}

// List handles GET /list. page_size and page_number go together or not at all.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, catalog.PageOptional, h.service.ListRelational, "Database query failed", h.logger)
}

// Products handles GET /products with page/limit paging done in SQL.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.ParseOffsetQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, err, "", h.logger)
		return
	}

	products, err := h.service.ListPage(r.Context(), q)
	if err != nil {
		writeServiceError(w, err, "Database query failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// serveList validates the query before list is called, so a bad page or
// date never reaches a data source.
func serveList[T any](
	w http.ResponseWriter,
	r *http.Request,
	policy catalog.PagePolicy,
	list func(ctx context.Context, q catalog.Query) ([]T, error),
	fallback string,
	logger zerolog.Logger,
) {
	q, err := catalog.ParseQuery(r.URL.Query(), policy)
	if err != nil {
		writeServiceError(w, err, fallback, logger)
		return
	}

	products, err := list(r.Context(), q)
	if err != nil {
		writeServiceError(w, err, fallback, logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
