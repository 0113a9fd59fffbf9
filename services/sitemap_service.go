package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"coastal-realty/models"
	"coastal-realty/store"
	"coastal-realty/utils/logger"

	"github.com/redis/go-redis/v9"
)

// ChangeFrequency is the sitemap changefreq hint.
type ChangeFrequency string

const (
	ChangeAlways  ChangeFrequency = "always"
	ChangeHourly  ChangeFrequency = "hourly"
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
	ChangeYearly  ChangeFrequency = "yearly"
	ChangeNever   ChangeFrequency = "never"
)

// SitemapEntry describes one publicly addressable page.
type SitemapEntry struct {
	URL             string          `json:"url"`
	LastModified    time.Time       `json:"lastModified"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	Priority        float64         `json:"priority"`
}

// StaticRoute is a hand-maintained page path.
type StaticRoute struct {
	Path            string
	ChangeFrequency ChangeFrequency
	Priority        float64
}

// DefaultStaticRoutes lists every page that is not generated from a record.
var DefaultStaticRoutes = []StaticRoute{
	{"", ChangeDaily, 1.0},
	{"/properties", ChangeDaily, 0.9},
	{"/properties/sold", ChangeWeekly, 0.7},
	{"/neighborhoods", ChangeMonthly, 0.8},
	{"/restaurants", ChangeWeekly, 0.7},
	{"/bars", ChangeWeekly, 0.7},
	{"/shops", ChangeWeekly, 0.7},
	{"/attractions", ChangeWeekly, 0.7},
	{"/parks", ChangeMonthly, 0.6},
	{"/activities", ChangeMonthly, 0.7},
	{"/events", ChangeWeekly, 0.7},
	{"/monthly-guides", ChangeMonthly, 0.6},
	{"/best-of", ChangeMonthly, 0.6},
	{"/lifestyle", ChangeMonthly, 0.6},
	{"/blog", ChangeWeekly, 0.7},
	{"/buying", ChangeMonthly, 0.8},
	{"/selling", ChangeMonthly, 0.8},
	{"/vacation-rentals", ChangeMonthly, 0.7},
	{"/faq", ChangeMonthly, 0.5},
	{"/contact", ChangeYearly, 0.6},
}

// Canonical path prefixes for record pages.
const (
	propertyPathPrefix = "/properties/"
	blogPathPrefix     = "/blog/"
	guidePathPrefix    = "/monthly-guides/"
	eventPathPrefix    = "/events/"
)

// sitemapCategories are the place categories with per-record pages.
var sitemapCategories = []models.Category{
	models.CategoryRestaurants,
	models.CategoryBars,
	models.CategoryShops,
	models.CategoryAttractions,
}

// BuildSitemap concatenates static routes with one entry per record. Order is
// insertion order and no deduplication is done; slugs are unique per collection.
func BuildSitemap(baseURL string, static []StaticRoute, ds *store.Dataset, now time.Time) []SitemapEntry {
	base := strings.TrimRight(baseURL, "/")
	entries := make([]SitemapEntry, 0, len(static))

	for _, r := range static {
		entries = append(entries, SitemapEntry{
			URL:             base + r.Path,
			LastModified:    now,
			ChangeFrequency: r.ChangeFrequency,
			Priority:        r.Priority,
		})
	}
	for _, p := range ds.Properties() {
		freq, prio := ChangeWeekly, 0.8
		if p.Sold() {
			freq, prio = ChangeMonthly, 0.5
		}
		entries = append(entries, SitemapEntry{base + propertyPathPrefix + p.Slug, now, freq, prio})
	}
	for _, b := range ds.BlogPosts() {
		entries = append(entries, SitemapEntry{base + blogPathPrefix + b.Slug, b.LastModified(), ChangeMonthly, 0.6})
	}
	for _, g := range ds.MonthlyGuides() {
		entries = append(entries, SitemapEntry{base + guidePathPrefix + g.Slug, now, ChangeYearly, 0.5})
	}
	for _, e := range ds.Events() {
		entries = append(entries, SitemapEntry{base + eventPathPrefix + e.Slug, now, ChangeMonthly, 0.6})
	}
	places := ds.Places()
	for _, c := range sitemapCategories {
		for _, p := range places {
			if p.Category == c {
				entries = append(entries, SitemapEntry{base + c.PathPrefix() + "/" + p.Slug, now, ChangeMonthly, 0.6})
			}
		}
	}
	return entries
}

const sitemapXMLNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// RenderSitemapXML encodes entries as a sitemaps.org urlset document.
func RenderSitemapXML(entries []SitemapEntry) ([]byte, error) {
	set := xmlURLSet{XMLNS: sitemapXMLNS, URLs: make([]xmlURL, len(entries))}
	for i, e := range entries {
		u := xmlURL{Loc: e.URL, ChangeFreq: string(e.ChangeFrequency)}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format(time.RFC3339)
		}
		u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		set.URLs[i] = u
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

const sitemapCacheKey = "sitemap:xml"

// SitemapService renders the sitemap and, when Redis is available, caches the XML.
type SitemapService struct {
	ds      *store.Dataset
	baseURL string
	static  []StaticRoute
	cache   *redis.Client
	ttl     time.Duration
	now     func() time.Time
	log     logger.Logger
}

func NewSitemapService(ds *store.Dataset, baseURL string, cache *redis.Client, log logger.Logger) *SitemapService {
	return &SitemapService{
		ds:      ds,
		baseURL: baseURL,
		static:  DefaultStaticRoutes,
		cache:   cache,
		ttl:     time.Hour,
		now:     time.Now,
		log:     log,
	}
}

func (s *SitemapService) Entries() []SitemapEntry {
	return BuildSitemap(s.baseURL, s.static, s.ds, s.now())
}

// XML returns the rendered sitemap, from cache when possible. Cache errors
// are logged and the sitemap is rendered directly.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sitemapCacheKey).Bytes()
		switch {
		case err == nil:
			return cached, nil
		case !errors.Is(err, redis.Nil):
			s.log.Warn("Sitemap cache read failed", logger.Error(err))
		}
	}

	body, err := RenderSitemapXML(s.Entries())
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, sitemapCacheKey, body, s.ttl).Err(); err != nil {
			s.log.Warn("Sitemap cache write failed", logger.Error(err))
		}
	}
	return body, nil
}

// Purge drops the cached sitemap so the next request re-renders it.
func (s *SitemapService) Purge(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, sitemapCacheKey).Err(); err != nil {
		return fmt.Errorf("purge sitemap cache: %w", err)
	}
	return nil
}

// RobotsTxt allows everything and points crawlers at the sitemap.
func (s *SitemapService) RobotsTxt() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(s.baseURL, "/"))
}
