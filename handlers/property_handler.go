package handlers

import (
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/models"
	"coastal-realty/services"
	"coastal-realty/utils/errors"

	"github.com/gorilla/mux"
)

const relatedLimit = 3

type PropertyHandler struct {
	properties *services.PropertyService
}

type PropertyListResponse struct {
	Properties []models.Property `json:"properties"`
	Count      int               `json:"count"`
}

type PropertyDetailResponse struct {
	Property models.Property   `json:"property"`
	Related  []models.Property `json:"related"`
}

func NewPropertyHandler(properties *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// ListProperties applies the filter/sort query. status=active or status=sold
// narrows the result to one side of the sale split.
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props := h.search(r)
	middleware.WriteJSON(w, http.StatusOK, PropertyListResponse{Properties: props, Count: len(props)})
}

func (h *PropertyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, services.ComputePropertyStats(h.search(r)))
}

func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	p, ok := h.properties.BySlug(slug)
	if !ok {
		middleware.WriteError(w, errors.NotFound("Property", slug))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, PropertyDetailResponse{
		Property: p,
		Related:  h.properties.Related(p, relatedLimit),
	})
}

func (h *PropertyHandler) search(r *http.Request) []models.Property {
	q := r.URL.Query()
	criteria := services.ParsePropertyCriteria(q)
	switch q.Get("status") {
	case "active":
		return services.FilterProperties(h.properties.Active(), criteria)
	case "sold":
		return services.FilterProperties(h.properties.Sold(), criteria)
	}
	return h.properties.Search(criteria)
}
