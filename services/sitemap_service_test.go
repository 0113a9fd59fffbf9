package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"testing"
	"time"

	"coastal-realty/models"
	"coastal-realty/store"
	"coastal-realty/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sitemapNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func sitemapDataset(t *testing.T, properties, posts int) *store.Dataset {
	t.Helper()
	var c store.Collections
	for i := range properties {
		c.Properties = append(c.Properties, listing(fmt.Sprintf("home-%d", i), 3, 500000))
	}
	for i := range posts {
		c.BlogPosts = append(c.BlogPosts, models.BlogPost{
			Slug:        fmt.Sprintf("post-%d", i),
			PublishedAt: sitemapNow.AddDate(0, 0, -i-1),
		})
	}
	ds, err := store.NewDataset(c)
	require.NoError(t, err)
	return ds
}

func TestDefaultStaticRoutesCount(t *testing.T) {
	assert.Len(t, DefaultStaticRoutes, 20)
}

func TestBuildSitemapCounts(t *testing.T) {
	ds := sitemapDataset(t, 5, 3)

	entries := BuildSitemap("https://coast.example/", DefaultStaticRoutes, ds, sitemapNow)
	require.Len(t, entries, 28)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.URL], "duplicate %s", e.URL)
		seen[e.URL] = true
		assert.GreaterOrEqual(t, e.Priority, 0.0)
		assert.LessOrEqual(t, e.Priority, 1.0)
	}

	assert.Equal(t, "https://coast.example", entries[0].URL)
	assert.Equal(t, "https://coast.example/properties/home-0", entries[20].URL)
	assert.Equal(t, "https://coast.example/blog/post-0", entries[25].URL)
	assert.Equal(t, sitemapNow.AddDate(0, 0, -1), entries[25].LastModified)
}

func TestBuildSitemapRecordOrder(t *testing.T) {
	updated := sitemapNow.Add(-time.Hour)
	ds, err := store.NewDataset(store.Collections{
		Properties:    []models.Property{listing("sold-one", 3, 1)},
		MonthlyGuides: []models.MonthlyGuide{{Slug: "june", MonthNumber: 6}},
		Events:        []models.Event{{Slug: "fest"}},
		BlogPosts:     []models.BlogPost{{Slug: "hello", PublishedAt: sitemapNow.AddDate(-1, 0, 0), UpdatedAt: &updated}},
		Places: []models.Place{
			{Slug: "park", Category: models.CategoryParks},
			{Slug: "pier", Category: models.CategoryAttractions},
			{Slug: "grill", Category: models.CategoryRestaurants},
			{Slug: "boutique", Category: models.CategoryShops},
			{Slug: "tiki", Category: models.CategoryBars},
		},
	})
	require.NoError(t, err)

	entries := BuildSitemap("https://coast.example", nil, ds, sitemapNow)
	var urls []string
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	assert.Equal(t, []string{
		"https://coast.example/properties/sold-one",
		"https://coast.example/blog/hello",
		"https://coast.example/monthly-guides/june",
		"https://coast.example/events/fest",
		"https://coast.example/restaurants/grill",
		"https://coast.example/bars/tiki",
		"https://coast.example/shops/boutique",
		"https://coast.example/attractions/pier",
	}, urls)
	assert.Equal(t, updated, entries[1].LastModified)
}

func TestRenderSitemapXML(t *testing.T) {
	entries := BuildSitemap("https://coast.example", DefaultStaticRoutes[:2], sitemapDataset(t, 1, 0), sitemapNow)

	body, err := RenderSitemapXML(entries)
	require.NoError(t, err)

	var parsed xmlURLSet
	require.NoError(t, xml.Unmarshal(body, &parsed))
	require.Len(t, parsed.URLs, 3)
	assert.Equal(t, "https://coast.example/properties", parsed.URLs[1].Loc)
	assert.Equal(t, "2026-10-18T12:00:00Z", parsed.URLs[1].LastMod)
	assert.Equal(t, "daily", parsed.URLs[1].ChangeFreq)
	assert.Equal(t, "0.9", parsed.URLs[1].Priority)
	assert.Contains(t, string(body), sitemapXMLNS)
}

func TestSitemapServiceCachesInRedis(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewSitemapService(sitemapDataset(t, 2, 1), "https://coast.example", client, logger.NewNop())
	ctx := context.Background()

	first, err := svc.XML(ctx)
	require.NoError(t, err)
	cached, err := mr.Get(sitemapCacheKey)
	require.NoError(t, err)
	assert.Equal(t, string(first), cached)

	require.NoError(t, mr.Set(sitemapCacheKey, "<cached/>"))
	second, err := svc.XML(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<cached/>", string(second))

	require.NoError(t, svc.Purge(ctx))
	assert.False(t, mr.Exists(sitemapCacheKey))
}

func TestSitemapServiceWithoutCache(t *testing.T) {
	svc := NewSitemapService(sitemapDataset(t, 1, 0), "https://coast.example/", nil, logger.NewNop())

	body, err := svc.XML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), "https://coast.example/properties/home-0")
	require.NoError(t, svc.Purge(context.Background()))
	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://coast.example/sitemap.xml\n", svc.RobotsTxt())
}
