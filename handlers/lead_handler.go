package handlers

import (
	"encoding/json"
	"mime"
	"net"
	"net/http"
	"strings"

	"coastal-realty/middleware"
	"coastal-realty/models"
	"coastal-realty/services"
	"coastal-realty/utils/errors"
	"coastal-realty/utils/logger"
)

const (
	maxLeadBody = 64 << 10

	msgUnreadable = "We couldn't read that submission. Please try again."
	msgCrashed    = "Something went wrong. Please call us"
)

type LeadHandler struct {
	leads    *services.LeadService
	throttle *services.LeadThrottle
	metrics  *services.Metrics
	log      logger.Logger
}

func NewLeadHandler(leads *services.LeadService, throttle *services.LeadThrottle, metrics *services.Metrics, log logger.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, throttle: throttle, metrics: metrics, log: log}
}

// SubmitLead accepts a contact form as JSON or url-encoded form data.
// Unreadable bodies and validation failures are 400; throttled clients get 429.
// Only readable submissions count against the throttle.
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("panic while handling lead", logger.Any("panic", rec))
			middleware.WriteJSON(w, http.StatusInternalServerError, services.LeadResult{Message: msgCrashed})
		}
	}()

	lead, err := decodeLead(r)
	if err != nil {
		h.log.Debug("unreadable lead body", logger.Error(err))
		middleware.WriteJSON(w, http.StatusBadRequest, services.LeadResult{Message: msgUnreadable})
		return
	}

	allowed, err := h.throttle.Allow(r.Context(), clientIP(r))
	if err != nil {
		h.log.Warn("lead throttle unavailable", logger.Error(err))
	}
	if !allowed {
		h.metrics.RecordLead(services.LeadThrottled)
		tooMany := errors.ErrTooManyRequests
		middleware.WriteJSON(w, tooMany.Status, services.LeadResult{Message: tooMany.Message})
		return
	}

	result := h.leads.Submit(r.Context(), lead)
	if !result.Success {
		middleware.WriteJSON(w, http.StatusBadRequest, result)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

func decodeLead(r *http.Request) (models.Lead, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxLeadBody)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var lead models.Lead
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return lead, err
		}
		f := r.PostForm
		lead = models.Lead{
			Name:             f.Get("name"),
			Email:            f.Get("email"),
			Phone:            f.Get("phone"),
			Message:          f.Get("message"),
			PreferredContact: f.Get("preferredContact"),
			PropertyInterest: f.Get("propertyInterest"),
			PropertyType:     f.Get("propertyType"),
			PriceRange:       f.Get("priceRange"),
			CheckIn:          f.Get("checkIn"),
			CheckOut:         f.Get("checkOut"),
			Guests:           f.Get("guests"),
			Source:           f.Get("source"),
			Website:          f.Get("website"),
		}
		return lead, nil
	default:
		err := json.NewDecoder(r.Body).Decode(&lead)
		return lead, err
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
