package services

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"coastal-realty/models"
	"coastal-realty/store"
)

// SortKey orders property search results.
type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortNewest     SortKey = "newest"
	SortSquareFeet SortKey = "sqft"
)

// PropertyCriteria is the raw, user-supplied search. Zero values mean
// "no constraint"; malformed values are ignored rather than rejected.
type PropertyCriteria struct {
	Bedrooms   string   `json:"bedrooms,omitempty"`   // "3" or "6+"
	PriceRange string   `json:"priceRange,omitempty"` // "min-max" or "min-" / "min+"
	Features   []string `json:"features,omitempty"`
	Sort       SortKey  `json:"sort,omitempty"`
}

// ParsePropertyCriteria reads criteria from query parameters. price_min and
// price_max are accepted as an alternative spelling of priceRange.
func ParsePropertyCriteria(q url.Values) PropertyCriteria {
	c := PropertyCriteria{
		Bedrooms:   q.Get("bedrooms"),
		PriceRange: q.Get("priceRange"),
		Sort:       SortKey(q.Get("sort")),
	}
	if c.PriceRange == "" {
		lo, hi := q.Get("price_min"), q.Get("price_max")
		if lo != "" || hi != "" {
			if lo == "" {
				lo = "0"
			}
			c.PriceRange = fmt.Sprintf("%s-%s", lo, hi)
		}
	}
	for _, raw := range q["features"] {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Features = append(c.Features, f)
			}
		}
	}
	return c
}

// FilterProperties applies criteria to all and returns a new, ordered slice.
// all is never modified.
func FilterProperties(all []models.Property, c PropertyCriteria) []models.Property {
	out := make([]models.Property, len(all))
	copy(out, all)

	if minBeds, ok := parseBedrooms(c.Bedrooms); ok {
		out = slices.DeleteFunc(out, func(p models.Property) bool {
			return p.Specs.Bedrooms < minBeds
		})
	}
	if pr, ok := parsePriceRange(c.PriceRange); ok {
		out = slices.DeleteFunc(out, func(p models.Property) bool {
			return !pr.contains(p.Pricing.ListPrice)
		})
	}
	if tokens := featureTokens(c.Features); len(tokens) > 0 {
		out = slices.DeleteFunc(out, func(p models.Property) bool {
			return !hasAllFeatures(p, tokens)
		})
	}

	sortProperties(out, c.Sort)
	return out
}

func sortProperties(props []models.Property, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(a.Pricing.ListPrice, b.Pricing.ListPrice)
		})
	case SortPriceDesc:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(b.Pricing.ListPrice, a.Pricing.ListPrice)
		})
	case SortNewest:
		// Days on market stands in for listing date.
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(a.Pricing.DaysOnMarket, b.Pricing.DaysOnMarket)
		})
	case SortSquareFeet:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			return cmp.Compare(b.Specs.SquareFeet, a.Specs.SquareFeet)
		})
	default:
		slices.SortStableFunc(props, func(a, b models.Property) int {
			switch {
			case a.Featured == b.Featured:
				return 0
			case a.Featured:
				return -1
			default:
				return 1
			}
		})
	}
}

func parseBedrooms(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

type priceRange struct {
	min, max int64
	hasMax   bool
}

func (r priceRange) contains(price int64) bool {
	if price < r.min {
		return false
	}
	return !r.hasMax || price <= r.max
}

func parsePriceRange(s string) (priceRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return priceRange{}, false
	}
	// A bare number is an open-ended minimum: "min+" arrives that way once
	// a query string decodes the "+" to a space.
	lo, hi, found := strings.Cut(strings.TrimSuffix(s, "+"), "-")
	if !found {
		lower, err := parsePrice(lo)
		if err != nil {
			return priceRange{}, false
		}
		return priceRange{min: lower}, true
	}
	lower, err := parsePrice(lo)
	if err != nil {
		return priceRange{}, false
	}
	if strings.TrimSpace(hi) == "" {
		return priceRange{min: lower}, true
	}
	upper, err := parsePrice(hi)
	if err != nil || upper < lower {
		return priceRange{}, false
	}
	return priceRange{min: lower, max: upper, hasMax: true}, true
}

func parsePrice(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative price %d", n)
	}
	return n, nil
}

// normalizeFeature lower-cases s and joins its words with hyphens,
// so "Private Pool" becomes "private-pool".
func normalizeFeature(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func featureTokens(features []string) []string {
	tokens := make([]string, 0, len(features))
	for _, f := range features {
		if t := normalizeFeature(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func hasAllFeatures(p models.Property, tokens []string) bool {
	all := p.Features.AllFeatures()
	normalized := make([]string, len(all))
	for i, f := range all {
		normalized[i] = normalizeFeature(f)
	}
	for _, t := range tokens {
		if !slices.ContainsFunc(normalized, func(f string) bool { return strings.Contains(f, t) }) {
			return false
		}
	}
	return true
}

// PropertyService serves property listings out of the dataset.
type PropertyService struct {
	ds *store.Dataset
}

func NewPropertyService(ds *store.Dataset) *PropertyService {
	return &PropertyService{ds: ds}
}

// Search filters and sorts every listing, sold ones included.
func (s *PropertyService) Search(c PropertyCriteria) []models.Property {
	return FilterProperties(s.ds.Properties(), c)
}

func (s *PropertyService) BySlug(slug string) (models.Property, bool) {
	return findBySlug(s.ds.Properties(), slug, func(p models.Property) string { return p.Slug })
}

// Active returns listings without a recorded sale.
func (s *PropertyService) Active() []models.Property {
	return slices.DeleteFunc(s.ds.Properties(), models.Property.Sold)
}

// Sold returns closed listings.
func (s *PropertyService) Sold() []models.Property {
	return slices.DeleteFunc(s.ds.Properties(), func(p models.Property) bool { return !p.Sold() })
}

// Related returns up to limit other listings: the curated list when present,
// otherwise listings in the same neighborhood in dataset order.
func (s *PropertyService) Related(p models.Property, limit int) []models.Property {
	out := []models.Property{}
	if limit <= 0 {
		return out
	}
	all := s.ds.Properties()
	if len(p.RelatedProperties) > 0 {
		for _, slug := range p.RelatedProperties {
			if len(out) == limit {
				break
			}
			if r, ok := findBySlug(all, slug, func(p models.Property) string { return p.Slug }); ok && r.Slug != p.Slug {
				out = append(out, r)
			}
		}
		return out
	}
	for _, r := range all {
		if len(out) == limit {
			break
		}
		if r.Slug != p.Slug && r.Neighborhood == p.Neighborhood {
			out = append(out, r)
		}
	}
	return out
}

// PropertyStats summarises list prices for a result set.
type PropertyStats struct {
	Count        int     `json:"count"`
	MinPrice     int64   `json:"minPrice"`
	MaxPrice     int64   `json:"maxPrice"`
	MedianPrice  int64   `json:"medianPrice"`
	AvgPriceSqFt float64 `json:"avgPricePerSqft"`
}

func ComputePropertyStats(props []models.Property) PropertyStats {
	stats := PropertyStats{Count: len(props)}
	if len(props) == 0 {
		return stats
	}
	prices := make([]int64, len(props))
	var perSqFt float64
	var withSqFt int
	for i, p := range props {
		prices[i] = p.Pricing.ListPrice
		if p.Specs.SquareFeet > 0 {
			perSqFt += float64(p.Pricing.ListPrice) / float64(p.Specs.SquareFeet)
			withSqFt++
		}
	}
	slices.Sort(prices)
	stats.MinPrice = prices[0]
	stats.MaxPrice = prices[len(prices)-1]
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		stats.MedianPrice = (prices[mid-1] + prices[mid]) / 2
	} else {
		stats.MedianPrice = prices[mid]
	}
	if withSqFt > 0 {
		stats.AvgPriceSqFt = perSqFt / float64(withSqFt)
	}
	return stats
}
