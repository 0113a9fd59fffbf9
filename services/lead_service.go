package services

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"coastal-realty/models"
	"coastal-realty/utils/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgLeadInvalid  = "Please check the form for errors."
	msgLeadAccepted = "Thank you! We'll be in touch soon."

	emailNotification = "notification"
	emailConfirmation = "confirmation"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

// FieldError is a validation failure scoped to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Delivery records which of the two lead emails went out.
type Delivery struct {
	NotificationSent bool `json:"notificationSent"`
	ConfirmationSent bool `json:"confirmationSent"`
}

// LeadResult is what the form sees. Success is true whenever validation
// passed; Delivery tells callers which emails actually went out.
type LeadResult struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	ReferenceID string       `json:"referenceId,omitempty"`
	Delivery    Delivery     `json:"-"`
}

// LeadService validates contact-form submissions and emails them on.
type LeadService struct {
	mailer          Mailer
	validate        *validator.Validate
	fromAddress     string
	operatorAddress string
	metrics         *Metrics
	log             logger.Logger
	newID           func() string
}

func NewLeadService(mailer Mailer, fromAddress, operatorAddress string, metrics *Metrics, log logger.Logger) *LeadService {
	return &LeadService{
		mailer:          mailer,
		validate:        newLeadValidator(),
		fromAddress:     fromAddress,
		operatorAddress: operatorAddress,
		metrics:         metrics,
		log:             log,
		newID:           uuid.NewString,
	}
}

func newLeadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for an empty tag.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks lead against the form schema and returns every field error.
func (s *LeadService) Validate(lead models.Lead) []FieldError {
	err := s.validate.Struct(lead)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Invalid value"
	}
}

func normalizeLead(lead models.Lead) models.Lead {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)
	if lead.PreferredContact == "" {
		lead.PreferredContact = models.ContactEmail
	}
	return lead
}

// Submit validates lead and, when it passes, sends the operator notification
// and the submitter confirmation one after the other. Send failures are logged
// and reflected in Delivery but never turn the result into a failure.
func (s *LeadService) Submit(ctx context.Context, lead models.Lead) LeadResult {
	if lead.Website != "" {
		s.metrics.RecordLead(LeadSpam)
		s.log.Info("Dropped lead with filled honeypot", logger.String("source", lead.Source))
		return LeadResult{Success: true, Message: msgLeadAccepted}
	}

	lead = normalizeLead(lead)
	if errs := s.Validate(lead); len(errs) > 0 {
		s.metrics.RecordLead(LeadInvalid)
		return LeadResult{Success: false, Message: msgLeadInvalid, FieldErrors: errs}
	}

	ref := s.newID()
	log := s.log.With(logger.String("reference", ref), logger.String("source", lead.Source))
	s.metrics.RecordLead(LeadAccepted)

	var delivery Delivery
	if html, err := renderNotification(lead, ref); err != nil {
		log.Error("Failed to render lead notification", logger.Error(err))
	} else {
		delivery.NotificationSent = s.send(ctx, log, emailNotification, Email{
			From:    s.fromAddress,
			To:      s.operatorAddress,
			ReplyTo: lead.Email,
			Subject: notificationSubject(lead),
			HTML:    html,
		})
	}

	if html, err := renderConfirmation(lead, ref); err != nil {
		log.Error("Failed to render lead confirmation", logger.Error(err))
	} else {
		delivery.ConfirmationSent = s.send(ctx, log, emailConfirmation, Email{
			From:    s.fromAddress,
			To:      lead.Email,
			Subject: confirmationSubject,
			HTML:    html,
		})
	}

	log.Info("Lead accepted",
		logger.Bool("notification_sent", delivery.NotificationSent),
		logger.Bool("confirmation_sent", delivery.ConfirmationSent),
	)
	return LeadResult{Success: true, Message: msgLeadAccepted, ReferenceID: ref, Delivery: delivery}
}

func (s *LeadService) send(ctx context.Context, log logger.Logger, kind string, email Email) bool {
	err := s.mailer.Send(ctx, email)
	s.metrics.RecordEmail(kind, err == nil)
	if err != nil {
		log.Error("Failed to send lead email", logger.String("kind", kind), logger.Error(err))
		return false
	}
	return true
}
