package handlers

import (
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/store"
	"coastal-realty/utils/logger"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into handlers. Auth is
// optional; without it the /auth and /admin routes are not registered.
type Deps struct {
	Dataset    *store.Dataset
	Properties *services.PropertyService
	Content    *services.ContentService
	Leads      *services.LeadService
	Throttle   *services.LeadThrottle
	Sitemap    *services.SitemapService
	Auth       *services.AuthService
	JWTSecret  string
	Metrics    *services.Metrics
	Gatherer   prometheus.Gatherer
	Origins    []string
	Log        logger.Logger
}

func NewRouter(d Deps) *mux.Router {
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := mux.NewRouter()
	r.Use(middleware.RecoverMiddleware(d.Log))
	r.Use(middleware.CORSMiddleware(d.Origins))
	r.Use(middleware.LoggingMiddleware(d.Log, d.Metrics))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	propertyHandler := NewPropertyHandler(d.Properties)
	api.HandleFunc("/properties", propertyHandler.ListProperties).Methods("GET", "OPTIONS")
	api.HandleFunc("/properties/stats", propertyHandler.GetStats).Methods("GET", "OPTIONS")
	api.HandleFunc("/properties/{slug}", propertyHandler.GetProperty).Methods("GET", "OPTIONS")

	placeHandler := NewPlaceHandler(d.Content)
	api.HandleFunc("/places", placeHandler.ListPlaces).Methods("GET", "OPTIONS")
	api.HandleFunc("/places/{category}", placeHandler.ListByCategory).Methods("GET", "OPTIONS")
	api.HandleFunc("/places/{category}/{slug}", placeHandler.GetPlace).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories/{slug}", placeHandler.GetCategoryLabel).Methods("GET", "OPTIONS")

	contentHandler := NewContentHandler(d.Content)
	api.HandleFunc("/activities", contentHandler.ListActivities).Methods("GET", "OPTIONS")
	api.HandleFunc("/events", contentHandler.ListEvents).Methods("GET", "OPTIONS")
	api.HandleFunc("/events/{slug}", contentHandler.GetEvent).Methods("GET", "OPTIONS")
	api.HandleFunc("/best-of", contentHandler.ListBestOf).Methods("GET", "OPTIONS")
	api.HandleFunc("/best-of/{slug}", contentHandler.GetBestOf).Methods("GET", "OPTIONS")
	api.HandleFunc("/monthly-guides", contentHandler.ListMonthlyGuides).Methods("GET", "OPTIONS")
	api.HandleFunc("/monthly-guides/current", contentHandler.GetCurrentMonthlyGuide).Methods("GET", "OPTIONS")
	api.HandleFunc("/monthly-guides/{slug}", contentHandler.GetMonthlyGuide).Methods("GET", "OPTIONS")
	api.HandleFunc("/lifestyle", contentHandler.ListLifestyle).Methods("GET", "OPTIONS")
	api.HandleFunc("/lifestyle/{slug}", contentHandler.GetLifestyle).Methods("GET", "OPTIONS")
	api.HandleFunc("/blog", contentHandler.ListBlogPosts).Methods("GET", "OPTIONS")
	api.HandleFunc("/blog/{slug}", contentHandler.GetBlogPost).Methods("GET", "OPTIONS")
	api.HandleFunc("/testimonials", contentHandler.ListTestimonials).Methods("GET", "OPTIONS")

	leadHandler := NewLeadHandler(d.Leads, d.Throttle, d.Metrics, d.Log)
	api.HandleFunc("/leads", leadHandler.SubmitLead).Methods("POST", "OPTIONS")

	sitemapHandler := NewSitemapHandler(d.Sitemap)
	r.HandleFunc("/sitemap.xml", sitemapHandler.GetSitemap).Methods("GET")
	r.HandleFunc("/robots.txt", sitemapHandler.GetRobots).Methods("GET")

	if d.Auth != nil {
		authHandler := NewAuthHandler(d.Auth)
		r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

		adminHandler := NewAdminHandler(d.Dataset, d.Sitemap, d.Log)
		adminRouter := r.PathPrefix("/admin").Subrouter()
		adminRouter.Use(middleware.JWTMiddleware(d.JWTSecret))
		adminRouter.HandleFunc("/dataset", adminHandler.GetDatasetStats).Methods("GET")
		adminRouter.HandleFunc("/sitemap/purge", adminHandler.PurgeSitemap).Methods("POST")
	}

	return r
}
