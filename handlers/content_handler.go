package handlers

import (
	"net/http"
	"strconv"

	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/utils/errors"

	"github.com/gorilla/mux"
)

// ContentHandler serves the editorial collections: activities, events,
// best-of lists, monthly guides, lifestyle scenarios, blog and testimonials.
type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		middleware.WriteJSON(w, http.StatusOK, h.content.ActivitiesByCategory(category))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, h.content.AllActivities())
}

func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		middleware.WriteJSON(w, http.StatusOK, h.content.AllEvents())
		return
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		middleware.WriteError(w, errors.NewAPIError("INVALID_INPUT", "month must be between 1 and 12", http.StatusBadRequest))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, h.content.EventsByMonth(month))
}

func (h *ContentHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	v, ok := h.content.EventBySlug(slug)
	writeFound(w, "Event", slug, v, ok)
}

func (h *ContentHandler) ListBestOf(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.AllBestOfLists())
}

func (h *ContentHandler) GetBestOf(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	v, ok := h.content.BestOfListBySlug(slug)
	writeFound(w, "Best-of list", slug, v, ok)
}

func (h *ContentHandler) ListMonthlyGuides(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.AllMonthlyGuides())
}

func (h *ContentHandler) GetCurrentMonthlyGuide(w http.ResponseWriter, r *http.Request) {
	v, ok := h.content.CurrentMonthGuide()
	writeFound(w, "Monthly guide", "current", v, ok)
}

func (h *ContentHandler) GetMonthlyGuide(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	v, ok := h.content.MonthlyGuideBySlug(slug)
	writeFound(w, "Monthly guide", slug, v, ok)
}

func (h *ContentHandler) ListLifestyle(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.AllLifestyleScenarios())
}

func (h *ContentHandler) GetLifestyle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	v, ok := h.content.LifestyleScenarioBySlug(slug)
	writeFound(w, "Lifestyle scenario", slug, v, ok)
}

func (h *ContentHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.AllBlogPosts())
}

func (h *ContentHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	v, ok := h.content.BlogPostBySlug(slug)
	writeFound(w, "Blog post", slug, v, ok)
}

// ListTestimonials returns every testimonial, or only featured ones with ?featured=true.
func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	if featured, _ := strconv.ParseBool(r.URL.Query().Get("featured")); featured {
		middleware.WriteJSON(w, http.StatusOK, h.content.FeaturedTestimonials())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, h.content.AllTestimonials())
}

func writeFound[T any](w http.ResponseWriter, resource, slug string, v T, ok bool) {
	if !ok {
		middleware.WriteError(w, errors.NotFound(resource, slug))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, v)
}
