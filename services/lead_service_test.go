package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coastal-realty/models"
	"coastal-realty/utils/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent   []Email
	failTo map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, email Email) error {
	if m.failTo[email.To] {
		return errors.New("provider unavailable")
	}
	m.sent = append(m.sent, email)
	return nil
}

const operator = "leads@coast.example"

func newLeadService(m Mailer) (*LeadService, *Metrics) {
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewLeadService(m, "Coast <noreply@coast.example>", operator, metrics, logger.NewNop())
	svc.newID = func() string { return "ref-123" }
	return svc, metrics
}

func validLead() models.Lead {
	return models.Lead{
		Name:             "Alice Shore",
		Email:            "alice@example.com",
		Phone:            "+1 (361) 555-0100",
		Message:          "Interested in the beach house.",
		PropertyInterest: "gulf-view-retreat",
		Source:           "property-page",
	}
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestLeadValidation(t *testing.T) {
	svc, _ := newLeadService(&fakeMailer{})

	tests := []struct {
		name       string
		mutate     func(*models.Lead)
		wantFields []string
	}{
		{"valid", func(*models.Lead) {}, nil},
		{"one-letter name", func(l *models.Lead) { l.Name = "A" }, []string{"name"}},
		{"two-letter name", func(l *models.Lead) { l.Name = "Al" }, nil},
		{"long name", func(l *models.Lead) { l.Name = strings.Repeat("x", 101) }, []string{"name"}},
		{"missing name", func(l *models.Lead) { l.Name = "" }, []string{"name"}},
		{"bad email", func(l *models.Lead) { l.Email = "not-an-email" }, []string{"email"}},
		{"short email", func(l *models.Lead) { l.Email = "a@b.com" }, nil},
		{"no phone", func(l *models.Lead) { l.Phone = "" }, nil},
		{"letters in phone", func(l *models.Lead) { l.Phone = "abc" }, []string{"phone"}},
		{"long message", func(l *models.Lead) { l.Message = strings.Repeat("m", 1001) }, []string{"message"}},
		{"bad contact preference", func(l *models.Lead) { l.PreferredContact = "pigeon" }, []string{"preferredContact"}},
		{"several at once", func(l *models.Lead) {
			l.Name = "A"
			l.Email = "nope"
			l.Phone = "call me"
		}, []string{"name", "email", "phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := validLead()
			tt.mutate(&lead)
			errs := svc.Validate(normalizeLead(lead))
			if tt.wantFields == nil {
				assert.Empty(t, errs)
				return
			}
			assert.ElementsMatch(t, tt.wantFields, fieldsOf(errs))
			for _, e := range errs {
				assert.NotEmpty(t, e.Message)
			}
		})
	}
}

func TestSubmitInvalidSendsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	svc, metrics := newLeadService(mailer)

	lead := validLead()
	lead.Email = "not-an-email"
	res := svc.Submit(context.Background(), lead)

	assert.False(t, res.Success)
	assert.Equal(t, msgLeadInvalid, res.Message)
	require.Len(t, res.FieldErrors, 1)
	assert.Equal(t, "email", res.FieldErrors[0].Field)
	assert.Empty(t, mailer.sent)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LeadsTotal.WithLabelValues(LeadInvalid)), 0)
}

func TestSubmitSendsBothEmails(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newLeadService(mailer)

	res := svc.Submit(context.Background(), validLead())

	require.True(t, res.Success)
	assert.Equal(t, "ref-123", res.ReferenceID)
	assert.Equal(t, Delivery{NotificationSent: true, ConfirmationSent: true}, res.Delivery)
	require.Len(t, mailer.sent, 2)

	notification, confirmation := mailer.sent[0], mailer.sent[1]
	assert.Equal(t, operator, notification.To)
	assert.Equal(t, "alice@example.com", notification.ReplyTo)
	assert.Equal(t, "New lead: Alice Shore (property-page)", notification.Subject)
	assert.Equal(t, "alice@example.com", confirmation.To)
	assert.Equal(t, confirmationSubject, confirmation.Subject)
}

func TestNotificationListsSubmittedFields(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newLeadService(mailer)

	lead := validLead()
	lead.Name = "<b>Bobby</b>"
	svc.Submit(context.Background(), lead)
	require.Len(t, mailer.sent, 2)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(mailer.sent[0].HTML))
	require.NoError(t, err)

	assert.Equal(t, "ref-123", doc.Find(".reference").Text())
	assert.Equal(t, "<b>Bobby</b>", doc.Find(`td[data-field="name"]`).Text(), "markup must be escaped")
	assert.Equal(t, "email", doc.Find(`td[data-field="preferredContact"]`).Text())
	assert.Equal(t, "property-page", doc.Find(`td[data-field="source"]`).Text())
	assert.Equal(t, 0, doc.Find(`td[data-field="guests"]`).Length(), "empty fields are omitted")
	assert.Contains(t, doc.Find(".message").Text(), "beach house")

	confirm, err := goquery.NewDocumentFromReader(strings.NewReader(mailer.sent[1].HTML))
	require.NoError(t, err)
	assert.Equal(t, "gulf-view-retreat", confirm.Find(".interest").Text())
	assert.Equal(t, "ref-123", confirm.Find(".reference").Text())
}

func TestSubmitPartialDeliveryStillSucceeds(t *testing.T) {
	mailer := &fakeMailer{failTo: map[string]bool{"alice@example.com": true}}
	svc, metrics := newLeadService(mailer)

	res := svc.Submit(context.Background(), validLead())

	assert.True(t, res.Success)
	assert.Equal(t, Delivery{NotificationSent: true, ConfirmationSent: false}, res.Delivery)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.EmailsTotal.WithLabelValues(emailConfirmation, "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.EmailsTotal.WithLabelValues(emailNotification, "sent")), 0)

	mailer = &fakeMailer{failTo: map[string]bool{operator: true}}
	svc, _ = newLeadService(mailer)
	res = svc.Submit(context.Background(), validLead())
	assert.True(t, res.Success)
	assert.Equal(t, Delivery{NotificationSent: false, ConfirmationSent: true}, res.Delivery)
}

func TestSubmitWithoutMailerConfigured(t *testing.T) {
	svc, _ := newLeadService(NewMailer("", logger.NewNop()))

	res := svc.Submit(context.Background(), validLead())

	assert.True(t, res.Success)
	assert.Equal(t, Delivery{}, res.Delivery)
}

func TestSubmitHoneypot(t *testing.T) {
	mailer := &fakeMailer{}
	svc, metrics := newLeadService(mailer)

	lead := validLead()
	lead.Website = "http://spam.example"
	res := svc.Submit(context.Background(), lead)

	assert.True(t, res.Success)
	assert.Empty(t, res.ReferenceID)
	assert.Empty(t, mailer.sent)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LeadsTotal.WithLabelValues(LeadSpam)), 0)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordLead(LeadAccepted)
	m.RecordEmail(emailNotification, true)
	m.ObserveRequest("/", "GET", "200", 0.1)
}
