package handlers

import (
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/store"
	"coastal-realty/utils/errors"
	"coastal-realty/utils/logger"
)

// AdminHandler backs the operator-only endpoints.
type AdminHandler struct {
	dataset *store.Dataset
	sitemap *services.SitemapService
	log     logger.Logger
}

func NewAdminHandler(dataset *store.Dataset, sitemap *services.SitemapService, log logger.Logger) *AdminHandler {
	return &AdminHandler{dataset: dataset, sitemap: sitemap, log: log}
}

func (h *AdminHandler) GetDatasetStats(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.dataset.Stats())
}

func (h *AdminHandler) PurgeSitemap(w http.ResponseWriter, r *http.Request) {
	if err := h.sitemap.Purge(r.Context()); err != nil {
		middleware.WriteError(w, errors.Wrap(err, "CACHE_ERROR", "Failed to purge sitemap cache", http.StatusBadGateway))
		return
	}
	subject, _ := middleware.Subject(r.Context())
	h.log.Info("sitemap cache purged", logger.String("by", subject))
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Sitemap cache purged"})
}
