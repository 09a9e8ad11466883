// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify composes the site's transactional emails and sends them
// through a mailer.Mailer. Lead notifications are best effort; proposal
// and contact emails report delivery failures to the caller.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"expostudio/internal/apperr"
	"expostudio/internal/mailer"
	"expostudio/internal/markdown"
)

// Notifier sends visitor submissions to the company inbox.
type Notifier struct {
	mailer mailer.Mailer
	from   string
	inbox  string
}

// New creates a Notifier. m may be nil when no transport is configured.
func New(m mailer.Mailer, from, inbox string) *Notifier {
	return &Notifier{mailer: m, from: from, inbox: inbox}
}

// Configured reports whether emails can be sent.
func (n *Notifier) Configured() bool {
	return n.ready() == nil
}

func (n *Notifier) ready() error {
	switch {
	case n.mailer == nil:
		return apperr.NotConfigured("MAIL_PROVIDER")
	case n.from == "":
		return apperr.NotConfigured("MAIL_FROM")
	case n.inbox == "":
		return apperr.NotConfigured("MAIL_NOTIFY_TO")
	}
	return nil
}

// send renders body and delivers it to the inbox with Reply-To set to the
// visitor.
func (n *Notifier) send(ctx context.Context, replyTo, subject, body string) error {
	if err := n.ready(); err != nil {
		return err
	}
	html, err := markdown.ToHTML(body)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to compose email.", err)
	}
	text, err := markdown.ToText(body)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to compose email.", err)
	}
	msg := &mailer.Message{
		From:    n.from,
		To:      []string{n.inbox},
		ReplyTo: replyTo,
		Subject: oneLine(subject),
		HTML:    html,
		Text:    text,
	}
	return n.mailer.Send(ctx, msg)
}

// Lead notifies the inbox of a new lead. Only validation errors are
// returned; delivery failures are logged and the lead still counts as
// received.
func (n *Notifier) Lead(ctx context.Context, l Lead) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := n.send(ctx, l.Email, "New lead: "+l.Name, l.body()); err != nil {
		slog.Error("lead notification failed", "error", err, "source", l.Source)
	}
	return nil
}

// Proposal forwards a visitor's generated design to the inbox.
func (n *Notifier) Proposal(ctx context.Context, p ProposalRequest) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return n.send(ctx, p.Email, "Proposal request: "+p.DesignConcept.Name+" for "+p.Name, p.body())
}

// Inquiry forwards a contact form submission to the inbox.
func (n *Notifier) Inquiry(ctx context.Context, q Inquiry) error {
	if err := q.Validate(); err != nil {
		return err
	}
	subject := "Website inquiry from " + q.Name
	if strings.TrimSpace(q.Subject) != "" {
		subject = "Website inquiry: " + q.Subject
	}
	return n.send(ctx, q.Email, subject, q.body())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.New(apperr.Validation, "Missing required field: "+name+".")
	}
	return nil
}

func validEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" {
		return apperr.New(apperr.Validation, "Invalid email address.")
	}
	return nil
}

// Length limits for submitted fields.
const (
	maxFieldLen   = 200
	maxMessageLen = 5000
)

// tooLong reports the first field whose value exceeds limit runes. Pairs are
// field name then value.
func tooLong(limit int, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if utf8.RuneCountInString(pairs[i+1]) > limit {
			return apperr.New(apperr.Validation, fmt.Sprintf("%s is too long (max %d characters).", pairs[i], limit))
		}
	}
	return nil
}
