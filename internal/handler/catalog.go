package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/service"
)

// CatalogHandler serves the public reference lists.
type CatalogHandler struct {
	catalog *service.CatalogService
	rs      *Responder
}

func NewCatalogHandler(catalog *service.CatalogService, rs *Responder) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, rs: rs}
}

func (h *CatalogHandler) Industries(w http.ResponseWriter, r *http.Request) {
	industries, err := h.catalog.Industries(r.Context())
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch industries")
		return
	}
	h.rs.JSON(w, r, http.StatusOK, "", industries)
}

func (h *CatalogHandler) AgeRanges(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.catalog.AgeRanges(r.Context())
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch age ranges")
		return
	}
	h.rs.JSON(w, r, http.StatusOK, "", ranges)
}
