package services

import (
	"bytes"
	"fmt"
	"html/template"

	"coastal-realty/models"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#1f2937">
<h2>New lead from {{.Lead.Name}}</h2>
<p>Reference: <strong class="reference">{{.ReferenceID}}</strong></p>
<table class="fields" cellpadding="6" style="border-collapse:collapse">
{{range .Rows}}<tr><th align="left">{{.Label}}</th><td data-field="{{.Key}}">{{.Value}}</td></tr>
{{end}}</table>
{{if .Lead.Message}}<h3>Message</h3><p class="message">{{.Lead.Message}}</p>{{end}}
</body></html>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#1f2937">
<h2>Thanks for reaching out, {{.Lead.Name}}!</h2>
<p>We received your message and one of our local agents will contact you by
<span class="contact">{{.Lead.PreferredContact}}</span> shortly.</p>
{{if .Lead.PropertyInterest}}<p>You asked about <strong class="interest">{{.Lead.PropertyInterest}}</strong>.</p>{{end}}
<p>Your reference number is <strong class="reference">{{.ReferenceID}}</strong>.</p>
<p>Talk soon,<br>The team</p>
</body></html>`))

type leadRow struct {
	Key, Label, Value string
}

type leadView struct {
	Lead        models.Lead
	ReferenceID string
	Rows        []leadRow
}

func newLeadView(lead models.Lead, ref string) leadView {
	candidates := []leadRow{
		{"name", "Name", lead.Name},
		{"email", "Email", lead.Email},
		{"phone", "Phone", lead.Phone},
		{"preferredContact", "Preferred contact", lead.PreferredContact},
		{"propertyInterest", "Property interest", lead.PropertyInterest},
		{"propertyType", "Property type", lead.PropertyType},
		{"priceRange", "Price range", lead.PriceRange},
		{"checkIn", "Check-in", lead.CheckIn},
		{"checkOut", "Check-out", lead.CheckOut},
		{"guests", "Guests", lead.Guests},
		{"source", "Source", lead.Source},
	}
	rows := make([]leadRow, 0, len(candidates))
	for _, r := range candidates {
		if r.Value != "" {
			rows = append(rows, r)
		}
	}
	return leadView{Lead: lead, ReferenceID: ref, Rows: rows}
}

func renderNotification(lead models.Lead, ref string) (string, error) {
	return render(notificationTmpl, newLeadView(lead, ref))
}

func renderConfirmation(lead models.Lead, ref string) (string, error) {
	return render(confirmationTmpl, newLeadView(lead, ref))
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func notificationSubject(lead models.Lead) string {
	if lead.Source != "" {
		return fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Source)
	}
	return "New lead: " + lead.Name
}

const confirmationSubject = "We received your message"
