package services

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"coastal-realty/models"
	"coastal-realty/store"
)

// ContentService exposes read-only views over the dataset. Misses are
// reported as empty results or ok=false, never as errors.
type ContentService struct {
	ds  *store.Dataset
	now func() time.Time
}

func NewContentService(ds *store.Dataset) *ContentService {
	return &ContentService{ds: ds, now: time.Now}
}

// WithClock replaces the clock used by CurrentMonthGuide.
func (s *ContentService) WithClock(now func() time.Time) *ContentService {
	s.now = now
	return s
}

func (s *ContentService) AllPlaces() []models.Place               { return s.ds.Places() }
func (s *ContentService) AllActivities() []models.Activity        { return s.ds.Activities() }
func (s *ContentService) AllEvents() []models.Event               { return s.ds.Events() }
func (s *ContentService) AllBestOfLists() []models.BestOfList     { return s.ds.BestOfLists() }
func (s *ContentService) AllMonthlyGuides() []models.MonthlyGuide { return s.ds.MonthlyGuides() }
func (s *ContentService) AllBlogPosts() []models.BlogPost         { return s.ds.BlogPosts() }
func (s *ContentService) AllTestimonials() []models.Testimonial   { return s.ds.Testimonials() }
func (s *ContentService) AllLifestyleScenarios() []models.LifestyleScenario {
	return s.ds.LifestyleScenarios()
}

// PlacesByCategory returns the places in category, in dataset order.
// A category outside the enumeration yields an empty result.
func (s *ContentService) PlacesByCategory(category models.Category) []models.Place {
	out := []models.Place{}
	if !category.Valid() {
		return out
	}
	for _, p := range s.ds.Places() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// PlaceGroup is a run of places sharing a subcategory.
type PlaceGroup struct {
	Subcategory string         `json:"subcategory"`
	Places      []models.Place `json:"places"`
}

// PlacesBySubcategory groups a category's places; groups appear in the order
// their first member appears in the dataset.
func (s *ContentService) PlacesBySubcategory(category models.Category) []PlaceGroup {
	groups := []PlaceGroup{}
	index := make(map[string]int)
	for _, p := range s.PlacesByCategory(category) {
		i, ok := index[p.Subcategory]
		if !ok {
			i = len(groups)
			index[p.Subcategory] = i
			groups = append(groups, PlaceGroup{Subcategory: p.Subcategory})
		}
		groups[i].Places = append(groups[i].Places, p)
	}
	return groups
}

func (s *ContentService) PlaceBySlug(category models.Category, slug string) (models.Place, bool) {
	for _, p := range s.PlacesByCategory(category) {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.Place{}, false
}

// RelatedPlaces returns up to limit other places for place. A curated
// NearbyPlaces list wins outright; otherwise same-category places come first,
// then places from other categories in the same neighborhood, each in dataset order.
func (s *ContentService) RelatedPlaces(place models.Place, limit int) []models.Place {
	out := []models.Place{}
	if limit <= 0 {
		return out
	}
	all := s.ds.Places()

	if len(place.NearbyPlaces) > 0 {
		bySlug := make(map[string]models.Place, len(all))
		for _, p := range all {
			if _, taken := bySlug[p.Slug]; !taken {
				bySlug[p.Slug] = p
			}
		}
		for _, slug := range place.NearbyPlaces {
			if len(out) == limit {
				break
			}
			if p, ok := bySlug[slug]; ok && !samePlace(p, place) {
				out = append(out, p)
			}
		}
		return out
	}

	for _, p := range all {
		if len(out) == limit {
			return out
		}
		if p.Category == place.Category && !samePlace(p, place) {
			out = append(out, p)
		}
	}
	if place.Neighborhood == "" {
		return out
	}
	for _, p := range all {
		if len(out) == limit {
			break
		}
		if p.Category != place.Category && p.Neighborhood == place.Neighborhood {
			out = append(out, p)
		}
	}
	return out
}

func samePlace(a, b models.Place) bool {
	return a.Slug == b.Slug && a.Category == b.Category
}

func (s *ContentService) ActivitiesByCategory(category string) []models.Activity {
	out := []models.Activity{}
	for _, a := range s.ds.Activities() {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func (s *ContentService) ActivityBySlug(slug string) (models.Activity, bool) {
	return findBySlug(s.ds.Activities(), slug, func(a models.Activity) string { return a.Slug })
}

// EventsByMonth returns events held in month (1-12).
func (s *ContentService) EventsByMonth(month int) []models.Event {
	out := []models.Event{}
	for _, e := range s.ds.Events() {
		if e.Month == month {
			out = append(out, e)
		}
	}
	return out
}

func (s *ContentService) EventBySlug(slug string) (models.Event, bool) {
	return findBySlug(s.ds.Events(), slug, func(e models.Event) string { return e.Slug })
}

func (s *ContentService) BestOfListBySlug(slug string) (models.BestOfList, bool) {
	return findBySlug(s.ds.BestOfLists(), slug, func(b models.BestOfList) string { return b.Slug })
}

func (s *ContentService) MonthlyGuideBySlug(slug string) (models.MonthlyGuide, bool) {
	return findBySlug(s.ds.MonthlyGuides(), slug, func(m models.MonthlyGuide) string { return m.Slug })
}

func (s *ContentService) LifestyleScenarioBySlug(slug string) (models.LifestyleScenario, bool) {
	return findBySlug(s.ds.LifestyleScenarios(), slug, func(l models.LifestyleScenario) string { return l.Slug })
}

func (s *ContentService) BlogPostBySlug(slug string) (models.BlogPost, bool) {
	return findBySlug(s.ds.BlogPosts(), slug, func(b models.BlogPost) string { return b.Slug })
}

// CurrentMonthGuide picks the guide for the clock's current calendar month.
func (s *ContentService) CurrentMonthGuide() (models.MonthlyGuide, bool) {
	month := int(s.now().Month())
	for _, g := range s.ds.MonthlyGuides() {
		if g.MonthNumber == month {
			return g, true
		}
	}
	return models.MonthlyGuide{}, false
}

func (s *ContentService) FeaturedTestimonials() []models.Testimonial {
	out := []models.Testimonial{}
	for _, t := range s.ds.Testimonials() {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

var extraCategoryLabels = map[string]string{
	"water-sports":    "Water Sports",
	"fishing":         "Fishing Charters",
	"family":          "Family Fun",
	"nature":          "Nature & Wildlife",
	"festivals":       "Festivals",
	"live-music":      "Live Music",
	"food-and-drink":  "Food & Drink",
	"market-updates":  "Market Updates",
	"buying":          "Buying Guides",
	"selling":         "Selling Guides",
	"vacation-rental": "Vacation Rentals",
	"retirement":      "Retirement",
}

// CategoryLabel maps a category slug to its display label. Unknown slugs are
// returned with the first letter capitalised.
func CategoryLabel(slug string) string {
	if c, ok := models.ParseCategory(slug); ok {
		return c.Label()
	}
	if label, ok := extraCategoryLabels[slug]; ok {
		return label
	}
	return capitalize(slug)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func findBySlug[T any](items []T, slug string, key func(T) string) (T, bool) {
	slug = strings.TrimSpace(slug)
	for _, it := range items {
		if key(it) == slug {
			return it, true
		}
	}
	var zero T
	return zero, false
}
