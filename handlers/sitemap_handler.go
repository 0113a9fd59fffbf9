package handlers

import (
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/utils/errors"
)

type SitemapHandler struct {
	sitemap *services.SitemapService
}

func NewSitemapHandler(sitemap *services.SitemapService) *SitemapHandler {
	return &SitemapHandler{sitemap: sitemap}
}

func (h *SitemapHandler) GetSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.sitemap.XML(r.Context())
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "SITEMAP_ERROR", "Failed to build sitemap", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

func (h *SitemapHandler) GetRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.sitemap.RobotsTxt()))
}
