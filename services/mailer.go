package services

import (
	"context"
	"errors"
	"fmt"

	"coastal-realty/utils/logger"

	"github.com/resend/resend-go/v2"
)

// ErrMailerDisabled is returned by NoopMailer for every send.
var ErrMailerDisabled = errors.New("email delivery not configured")

// Email is one outbound HTML message.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers a single email. Implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ResendMailer sends through the Resend transactional email API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}
	if email.ReplyTo != "" {
		req.ReplyTo = email.ReplyTo
	}
	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend send to %s: %w", email.To, err)
	}
	return nil
}

// NoopMailer stands in when no API key is configured; it logs and reports failure.
type NoopMailer struct {
	log logger.Logger
}

func NewNoopMailer(log logger.Logger) *NoopMailer {
	return &NoopMailer{log: log}
}

func (m *NoopMailer) Send(_ context.Context, email Email) error {
	m.log.Warn("Email not sent: no API key configured",
		logger.String("subject", email.Subject),
	)
	return ErrMailerDisabled
}

// NewMailer picks the Resend mailer when apiKey is set, otherwise the no-op one.
func NewMailer(apiKey string, log logger.Logger) Mailer {
	if apiKey == "" {
		return NewNoopMailer(log)
	}
	return NewResendMailer(apiKey)
}
