// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends transactional email through one interface with
// pluggable transports: an SMTP relay, a hosted email API, or AWS SES.
// The transport is chosen once from configuration; callers only ever see
// Mailer.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"expostudio/internal/apperr"
)

// Message is a single outgoing email. It is sent once and never retried.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the addresses and required fields.
func (m *Message) Validate() error {
	if m.From == "" {
		return errors.New("mail: missing From address")
	}
	if _, err := mail.ParseAddress(m.From); err != nil {
		return fmt.Errorf("mail: invalid From address: %w", err)
	}
	if len(m.To) == 0 {
		return errors.New("mail: no recipients")
	}
	for _, to := range m.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return fmt.Errorf("mail: invalid recipient %q: %w", to, err)
		}
	}
	if m.ReplyTo != "" {
		if _, err := mail.ParseAddress(m.ReplyTo); err != nil {
			return fmt.Errorf("mail: invalid Reply-To: %w", err)
		}
	}
	if strings.ContainsAny(m.Subject, "\r\n") {
		return errors.New("mail: subject contains a line break")
	}
	if m.HTML == "" && m.Text == "" {
		return errors.New("mail: empty body")
	}
	return nil
}

// Mailer delivers a message. Implementations return an *apperr.Error of
// kind Mail on any transport failure.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	// Name identifies the transport in logs ("smtp", "api", "ses").
	Name() string
}

// Settings selects and configures a transport.
type Settings struct {
	Provider string // "smtp", "api", "ses", or empty to auto-detect

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSecure   bool

	APIKey     string
	APIBaseURL string

	SESRegion    string
	SESAccessKey string
	SESSecretKey string
}

// New builds the configured transport. It returns (nil, nil) when nothing
// is configured so the server can start without mail; handlers report the
// missing configuration per request.
func New(s Settings) (Mailer, error) {
	provider := s.Provider
	if provider == "" {
		switch {
		case s.APIKey != "":
			provider = "api"
		case s.SMTPHost != "":
			provider = "smtp"
		case s.SESAccessKey != "":
			provider = "ses"
		default:
			slog.Warn("mail transport not configured, email endpoints disabled")
			return nil, nil
		}
	}

	switch provider {
	case "smtp":
		if s.SMTPHost == "" {
			return nil, errors.New("mail: SMTP_HOST is required for the smtp provider")
		}
		return NewSMTP(s.SMTPHost, s.SMTPPort, s.SMTPUser, s.SMTPPassword, s.SMTPSecure), nil
	case "api":
		if s.APIKey == "" {
			return nil, errors.New("mail: MAIL_API_KEY is required for the api provider")
		}
		return NewAPI(s.APIKey, s.APIBaseURL, nil), nil
	case "ses":
		if s.SESAccessKey == "" || s.SESSecretKey == "" {
			return nil, errors.New("mail: SES_ACCESS_KEY and SES_SECRET_KEY are required for the ses provider")
		}
		return NewSES(s.SESRegion, s.SESAccessKey, s.SESSecretKey), nil
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", provider)
	}
}

// sendFailed wraps a transport error for the HTTP layer.
func sendFailed(transport string, err error) error {
	return apperr.Wrap(apperr.Mail, "Failed to send email.", fmt.Errorf("%s: %w", transport, err))
}
