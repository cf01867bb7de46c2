package handlers

import (
	"net/http"
	"strings"

	"gadgetfinder-backend/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) Site(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Site)
}

func (h *CatalogHandler) Affiliates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Affiliates)
}

// QuickPick answers the client-side finder without calling the upstream.
func (h *CatalogHandler) QuickPick(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query is required", r))
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.QuickPick(q))
}
