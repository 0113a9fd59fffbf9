package handlers

import (
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/models"
	"coastal-realty/services"
	"coastal-realty/utils/errors"

	"github.com/gorilla/mux"
)

type PlaceHandler struct {
	content *services.ContentService
}

type PlaceCategoryResponse struct {
	Category models.Category       `json:"category"`
	Label    string                `json:"label"`
	Places   []models.Place        `json:"places"`
	Groups   []services.PlaceGroup `json:"groups"`
	Count    int                   `json:"count"`
}

type PlaceDetailResponse struct {
	Place   models.Place   `json:"place"`
	Related []models.Place `json:"related"`
}

func NewPlaceHandler(content *services.ContentService) *PlaceHandler {
	return &PlaceHandler{content: content}
}

func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places := h.content.AllPlaces()
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"places": places, "count": len(places)})
}

func (h *PlaceHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := models.ParseCategory(mux.Vars(r)["category"])
	if !ok {
		middleware.WriteError(w, errors.NotFound("Category", mux.Vars(r)["category"]))
		return
	}
	places := h.content.PlacesByCategory(category)
	middleware.WriteJSON(w, http.StatusOK, PlaceCategoryResponse{
		Category: category,
		Label:    category.Label(),
		Places:   places,
		Groups:   h.content.PlacesBySubcategory(category),
		Count:    len(places),
	})
}

func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, ok := models.ParseCategory(vars["category"])
	if !ok {
		middleware.WriteError(w, errors.NotFound("Category", vars["category"]))
		return
	}
	place, ok := h.content.PlaceBySlug(category, vars["slug"])
	if !ok {
		middleware.WriteError(w, errors.NotFound("Place", vars["slug"]))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, PlaceDetailResponse{
		Place:   place,
		Related: h.content.RelatedPlaces(place, relatedLimit),
	})
}

// GetCategoryLabel returns the display label for any category slug, known or not.
func (h *PlaceHandler) GetCategoryLabel(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"slug": slug, "label": services.CategoryLabel(slug)})
}
