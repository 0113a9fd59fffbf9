package services

import (
	"fmt"
	"net/url"
	"testing"

	"coastal-realty/models"
	"coastal-realty/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(slug string, beds int, price int64) models.Property {
	return models.Property{
		ID:      slug,
		Slug:    slug,
		Specs:   models.PropertySpecs{Bedrooms: beds, Bathrooms: 2, SquareFeet: 1500},
		Pricing: models.PropertyPricing{ListPrice: price, DaysOnMarket: 30},
	}
}

func slugs(props []models.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Slug
	}
	return out
}

func sampleListings() []models.Property {
	a := listing("a", 2, 450000)
	a.Features.Highlights = []string{"Gulf Views", "Private Pool"}
	a.Pricing.DaysOnMarket = 40
	a.Specs.SquareFeet = 1200

	b := listing("b", 4, 1250000)
	b.Featured = true
	b.Features.Outdoor = []string{"Outdoor Kitchen", "Private  pool"}
	b.Pricing.DaysOnMarket = 5
	b.Specs.SquareFeet = 3100

	c := listing("c", 6, 1800000)
	c.Features.Indoor = []string{"Elevator", "Wine Room"}
	c.Pricing.DaysOnMarket = 12
	c.Specs.SquareFeet = 4200

	d := listing("d", 5, 1500000)
	d.Featured = true
	d.Features.Highlights = []string{"Beachfront"}
	d.Features.Outdoor = []string{"Private Pool"}
	d.Pricing.DaysOnMarket = 90
	d.Specs.SquareFeet = 3600

	e := listing("e", 7, 3200000)
	e.Pricing.DaysOnMarket = 5
	e.Specs.SquareFeet = 5200

	return []models.Property{a, b, c, d, e}
}

func TestFilterPropertiesBedrooms(t *testing.T) {
	all := sampleListings()
	for _, tc := range []struct {
		bedrooms string
		min      int
	}{{"3", 3}, {"6+", 6}, {"0", 0}} {
		t.Run(tc.bedrooms, func(t *testing.T) {
			got := FilterProperties(all, PropertyCriteria{Bedrooms: tc.bedrooms})
			included := map[string]bool{}
			for _, p := range got {
				assert.GreaterOrEqual(t, p.Specs.Bedrooms, tc.min)
				included[p.Slug] = true
			}
			for _, p := range all {
				if !included[p.Slug] {
					assert.Less(t, p.Specs.Bedrooms, tc.min, "%s wrongly excluded", p.Slug)
				}
			}
		})
	}
}

func TestFilterPropertiesPriceRange(t *testing.T) {
	all := sampleListings()
	tests := []struct {
		rng  string
		want []string
	}{
		{"1000000-2000000", []string{"b", "d", "c"}},
		{"1250000-1500000", []string{"b", "d"}},
		{"1500000-", []string{"d", "c", "e"}},
		{"1500000+", []string{"d", "c", "e"}},
		{"1500000", []string{"d", "c", "e"}},
		{"15OO000+", []string{"b", "d", "a", "c", "e"}},
		{"abc-def", []string{"b", "d", "a", "c", "e"}},
		{"2000000-1000000", []string{"b", "d", "a", "c", "e"}},
		{"-5", []string{"b", "d", "a", "c", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			got := FilterProperties(all, PropertyCriteria{PriceRange: tt.rng})
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestFilterPropertiesPriceFloorFromQueryString(t *testing.T) {
	q, err := url.ParseQuery("priceRange=1500000+")
	require.NoError(t, err)

	got := FilterProperties(sampleListings(), ParsePropertyCriteria(q))
	assert.Equal(t, []string{"d", "c", "e"}, slugs(got))
}

func TestFilterPropertiesBedroomsAndPrice(t *testing.T) {
	got := FilterProperties(sampleListings(), PropertyCriteria{Bedrooms: "6+", PriceRange: "1000000-2000000"})
	assert.Equal(t, []string{"c"}, slugs(got), "5-bed listing at $1.5M must fail the bedroom constraint")
}

func TestFilterPropertiesFeatures(t *testing.T) {
	all := sampleListings()

	got := FilterProperties(all, PropertyCriteria{Features: []string{"private pool"}})
	assert.Equal(t, []string{"b", "d", "a"}, slugs(got))

	got = FilterProperties(all, PropertyCriteria{Features: []string{"Private-Pool", "beach"}})
	assert.Equal(t, []string{"d"}, slugs(got))

	got = FilterProperties(all, PropertyCriteria{Features: []string{"helipad"}})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterPropertiesSorting(t *testing.T) {
	all := sampleListings()
	tests := []struct {
		sort SortKey
		want []string
	}{
		{SortFeatured, []string{"b", "d", "a", "c", "e"}},
		{"", []string{"b", "d", "a", "c", "e"}},
		{"bogus", []string{"b", "d", "a", "c", "e"}},
		{SortPriceAsc, []string{"a", "b", "d", "c", "e"}},
		{SortPriceDesc, []string{"e", "c", "d", "b", "a"}},
		{SortNewest, []string{"b", "e", "c", "a", "d"}},
		{SortSquareFeet, []string{"e", "c", "d", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.want, slugs(FilterProperties(all, PropertyCriteria{Sort: tt.sort})))
		})
	}
}

func TestFilterPropertiesPriceAscIsOrdered(t *testing.T) {
	got := FilterProperties(sampleListings(), PropertyCriteria{Sort: SortPriceAsc})
	for i := 0; i+1 < len(got); i++ {
		assert.LessOrEqual(t, got[i].Pricing.ListPrice, got[i+1].Pricing.ListPrice)
	}
}

func TestFilterPropertiesFeaturedScenario(t *testing.T) {
	var all []models.Property
	for i := range 10 {
		p := listing(fmt.Sprintf("p%d", i), 3, int64(100000*(i+1)))
		p.Featured = i == 2 || i == 5 || i == 8
		all = append(all, p)
	}

	got := FilterProperties(all, PropertyCriteria{})
	require.Len(t, got, 10)
	assert.Equal(t,
		[]string{"p2", "p5", "p8", "p0", "p1", "p3", "p4", "p6", "p7", "p9"},
		slugs(got))
}

func TestFilterPropertiesDoesNotMutateSource(t *testing.T) {
	all := sampleListings()
	before := slugs(all)

	first := FilterProperties(all, PropertyCriteria{Sort: SortPriceDesc, Bedrooms: "3"})
	second := FilterProperties(all, PropertyCriteria{Sort: SortPriceDesc, Bedrooms: "3"})

	assert.Equal(t, before, slugs(all))
	assert.Equal(t, first, second)
}

func TestFilterPropertiesEmptyInput(t *testing.T) {
	got := FilterProperties(nil, PropertyCriteria{Bedrooms: "2"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParsePropertyCriteria(t *testing.T) {
	q := url.Values{}
	q.Set("bedrooms", "6+")
	q.Set("price_min", "500000")
	q.Add("features", "pool, gulf view")
	q.Add("features", "dock")
	q.Set("sort", "price-desc")

	c := ParsePropertyCriteria(q)
	assert.Equal(t, "6+", c.Bedrooms)
	assert.Equal(t, "500000-", c.PriceRange)
	assert.Equal(t, []string{"pool", "gulf view", "dock"}, c.Features)
	assert.Equal(t, SortPriceDesc, c.Sort)

	q = url.Values{}
	q.Set("priceRange", "1-2")
	q.Set("price_max", "9")
	assert.Equal(t, "1-2", ParsePropertyCriteria(q).PriceRange)

	q = url.Values{}
	q.Set("price_max", "900000")
	assert.Equal(t, "0-900000", ParsePropertyCriteria(q).PriceRange)
}

func TestNormalizeFeature(t *testing.T) {
	assert.Equal(t, "private-pool", normalizeFeature("  Private   Pool "))
	assert.Equal(t, "elevator", normalizeFeature("ELEVATOR"))
	assert.Equal(t, "", normalizeFeature("   "))
}

func TestPropertyServiceRelatedAndSold(t *testing.T) {
	all := sampleListings()
	all[0].Neighborhood = "Cinnamon Shore"
	all[1].Neighborhood = "Cinnamon Shore"
	all[2].Neighborhood = "Cinnamon Shore"
	all[3].Neighborhood = "Island Moorings"
	all[4].RelatedProperties = []string{"d", "missing", "e", "a"}
	sale := int64(1400000)
	all[3].Pricing.SalePrice = &sale

	ds, err := store.NewDataset(store.Collections{Properties: all})
	require.NoError(t, err)
	svc := NewPropertyService(ds)

	a, ok := svc.BySlug("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, slugs(svc.Related(a, 1)))
	assert.Equal(t, []string{"b", "c"}, slugs(svc.Related(a, 5)))

	e, _ := svc.BySlug("e")
	assert.Equal(t, []string{"d", "a"}, slugs(svc.Related(e, 5)))
	assert.Empty(t, svc.Related(e, 0))

	_, ok = svc.BySlug("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"d"}, slugs(svc.Sold()))
	assert.Equal(t, []string{"a", "b", "c", "e"}, slugs(svc.Active()))
	assert.Len(t, svc.Search(PropertyCriteria{}), 5)
}

func TestComputePropertyStats(t *testing.T) {
	stats := ComputePropertyStats(sampleListings())
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, int64(450000), stats.MinPrice)
	assert.Equal(t, int64(3200000), stats.MaxPrice)
	assert.Equal(t, int64(1500000), stats.MedianPrice)
	assert.Positive(t, stats.AvgPriceSqFt)

	even := ComputePropertyStats(sampleListings()[:2])
	assert.Equal(t, int64(850000), even.MedianPrice)

	assert.Equal(t, PropertyStats{}, ComputePropertyStats(nil))
}
