// Package store holds the static content dataset. A Dataset is built once at
// startup and never changes afterwards, so it is safe to share between requests.
package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"coastal-realty/models"
)

// Collection names, shared by the JSON files and the Mongo collections.
const (
	CollectionProperties   = "properties"
	CollectionPlaces       = "places"
	CollectionActivities   = "activities"
	CollectionEvents       = "events"
	CollectionBestOf       = "best-of"
	CollectionMonthly      = "monthly-guides"
	CollectionLifestyle    = "lifestyle"
	CollectionBlogPosts    = "blog-posts"
	CollectionTestimonials = "testimonials"
)

// Source produces a Dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Collections is the raw material a Source decodes before the Dataset is sealed.
type Collections struct {
	Properties         []models.Property
	Places             []models.Place
	Activities         []models.Activity
	Events             []models.Event
	BestOfLists        []models.BestOfList
	MonthlyGuides      []models.MonthlyGuide
	LifestyleScenarios []models.LifestyleScenario
	BlogPosts          []models.BlogPost
	Testimonials       []models.Testimonial
}

// Dataset is the read-only content arena. Accessors return copies of the
// top-level slices so callers cannot reorder or truncate the shared data.
type Dataset struct {
	c        Collections
	loadedAt time.Time
}

// Stats summarises a loaded dataset.
type Stats struct {
	LoadedAt time.Time      `json:"loadedAt"`
	Counts   map[string]int `json:"counts"`
}

// NewDataset validates the collections and seals them into a Dataset.
func NewDataset(c Collections) (*Dataset, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	return &Dataset{c: c, loadedAt: time.Now()}, nil
}

func (d *Dataset) Properties() []models.Property        { return slices.Clone(d.c.Properties) }
func (d *Dataset) Places() []models.Place               { return slices.Clone(d.c.Places) }
func (d *Dataset) Activities() []models.Activity        { return slices.Clone(d.c.Activities) }
func (d *Dataset) Events() []models.Event               { return slices.Clone(d.c.Events) }
func (d *Dataset) BestOfLists() []models.BestOfList     { return slices.Clone(d.c.BestOfLists) }
func (d *Dataset) MonthlyGuides() []models.MonthlyGuide { return slices.Clone(d.c.MonthlyGuides) }
func (d *Dataset) BlogPosts() []models.BlogPost         { return slices.Clone(d.c.BlogPosts) }
func (d *Dataset) Testimonials() []models.Testimonial   { return slices.Clone(d.c.Testimonials) }
func (d *Dataset) LifestyleScenarios() []models.LifestyleScenario {
	return slices.Clone(d.c.LifestyleScenarios)
}

func (d *Dataset) Stats() Stats {
	return Stats{
		LoadedAt: d.loadedAt,
		Counts: map[string]int{
			CollectionProperties:   len(d.c.Properties),
			CollectionPlaces:       len(d.c.Places),
			CollectionActivities:   len(d.c.Activities),
			CollectionEvents:       len(d.c.Events),
			CollectionBestOf:       len(d.c.BestOfLists),
			CollectionMonthly:      len(d.c.MonthlyGuides),
			CollectionLifestyle:    len(d.c.LifestyleScenarios),
			CollectionBlogPosts:    len(d.c.BlogPosts),
			CollectionTestimonials: len(d.c.Testimonials),
		},
	}
}

func validate(c Collections) error {
	seen := make(map[string]struct{}, len(c.Properties))
	for _, p := range c.Properties {
		if p.Slug == "" {
			return fmt.Errorf("property %q: empty slug", p.ID)
		}
		if _, dup := seen[p.Slug]; dup {
			return fmt.Errorf("property %q: duplicate slug", p.Slug)
		}
		seen[p.Slug] = struct{}{}
		if p.Pricing.ListPrice <= 0 {
			return fmt.Errorf("property %q: list price must be positive", p.Slug)
		}
		if p.Specs.Bedrooms < 0 || p.Specs.Bathrooms < 0 {
			return fmt.Errorf("property %q: negative room count", p.Slug)
		}
	}

	placeSlugs := make(map[models.Category]map[string]struct{})
	for _, p := range c.Places {
		if !p.Category.Valid() {
			return fmt.Errorf("place %q: unknown category %q", p.Slug, p.Category)
		}
		if p.Slug == "" {
			return fmt.Errorf("place %q: empty slug", p.Name)
		}
		if p.PriceTier != "" && !p.PriceTier.Valid() {
			return fmt.Errorf("place %q: unknown price tier %q", p.Slug, p.PriceTier)
		}
		bucket, ok := placeSlugs[p.Category]
		if !ok {
			bucket = make(map[string]struct{})
			placeSlugs[p.Category] = bucket
		}
		if _, dup := bucket[p.Slug]; dup {
			return fmt.Errorf("place %q: duplicate slug in %s", p.Slug, p.Category)
		}
		bucket[p.Slug] = struct{}{}
	}

	checks := []struct {
		name  string
		slugs []string
	}{
		{CollectionActivities, slugsOf(c.Activities, func(a models.Activity) string { return a.Slug })},
		{CollectionEvents, slugsOf(c.Events, func(e models.Event) string { return e.Slug })},
		{CollectionBestOf, slugsOf(c.BestOfLists, func(b models.BestOfList) string { return b.Slug })},
		{CollectionMonthly, slugsOf(c.MonthlyGuides, func(m models.MonthlyGuide) string { return m.Slug })},
		{CollectionLifestyle, slugsOf(c.LifestyleScenarios, func(l models.LifestyleScenario) string { return l.Slug })},
		{CollectionBlogPosts, slugsOf(c.BlogPosts, func(b models.BlogPost) string { return b.Slug })},
	}
	for _, chk := range checks {
		if err := uniqueSlugs(chk.name, chk.slugs); err != nil {
			return err
		}
	}
	return nil
}

func slugsOf[T any](items []T, slug func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = slug(it)
	}
	return out
}

func uniqueSlugs(collection string, slugs []string) error {
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		if s == "" {
			return fmt.Errorf("%s: empty slug", collection)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%s: duplicate slug %q", collection, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
