// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"fmt"
	"strings"

	"expostudio/internal/apperr"
	"expostudio/internal/markdown"
	"expostudio/internal/studio"
)

// Lead is a short expression of interest captured by a popup or CTA.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
	Source  string `json:"source"` // page or widget that captured the lead
}

func (l *Lead) Validate() error {
	if err := required("name", l.Name); err != nil {
		return err
	}
	if err := validEmail(l.Email); err != nil {
		return err
	}
	if err := tooLong(maxFieldLen, "name", l.Name, "phone", l.Phone, "company", l.Company, "service", l.Service, "source", l.Source); err != nil {
		return err
	}
	return tooLong(maxMessageLen, "message", l.Message)
}

func (l *Lead) body() string {
	var sb strings.Builder
	sb.WriteString("## New lead\n\n")
	field(&sb, "Name", l.Name)
	field(&sb, "Email", l.Email)
	field(&sb, "Phone", l.Phone)
	field(&sb, "Company", l.Company)
	field(&sb, "Service", l.Service)
	field(&sb, "Source", l.Source)
	paragraph(&sb, "Message", l.Message)
	return sb.String()
}

// ProposalRequest asks the studio to quote a generated design.
type ProposalRequest struct {
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Company       string               `json:"company"`
	Phone         string               `json:"phone"`
	Kind          string               `json:"kind"` // exhibition, event or interior
	DesignConcept studio.DesignConcept `json:"designConcept"`
	Notes         string               `json:"notes"`
}

var proposalKinds = map[string]string{
	"exhibition": "Exhibition stand",
	"event":      "Event",
	"interior":   "Interior design",
}

func (p *ProposalRequest) Validate() error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if err := validEmail(p.Email); err != nil {
		return err
	}
	if err := required("kind", p.Kind); err != nil {
		return err
	}
	if _, ok := proposalKinds[p.Kind]; !ok {
		return apperr.New(apperr.Validation, "kind must be exhibition, event or interior.")
	}
	if err := required("designConcept", p.DesignConcept.Name); err != nil {
		return err
	}
	if err := tooLong(maxFieldLen, "name", p.Name, "company", p.Company, "phone", p.Phone); err != nil {
		return err
	}
	return tooLong(maxMessageLen, "notes", p.Notes, "designConcept", p.DesignConcept.Description)
}

func (p *ProposalRequest) body() string {
	c := p.DesignConcept
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s proposal request\n\n", proposalKinds[p.Kind])
	field(&sb, "Name", p.Name)
	field(&sb, "Email", p.Email)
	field(&sb, "Company", p.Company)
	field(&sb, "Phone", p.Phone)

	fmt.Fprintf(&sb, "\n### %s\n\n", markdown.Escape(c.Name))
	if c.Description != "" {
		sb.WriteString(markdown.Escape(c.Description) + "\n\n")
	}
	list(&sb, "Materials", c.Materials)
	field(&sb, "Lighting", c.Lighting)
	list(&sb, "Technology", c.Technology)
	list(&sb, "Colour palette", c.ColorPalette)
	paragraph(&sb, "Notes", p.Notes)
	return sb.String()
}

// Inquiry is a contact form submission.
type Inquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (q *Inquiry) Validate() error {
	if err := required("name", q.Name); err != nil {
		return err
	}
	if err := validEmail(q.Email); err != nil {
		return err
	}
	if err := required("message", q.Message); err != nil {
		return err
	}
	if err := tooLong(maxFieldLen, "name", q.Name, "phone", q.Phone, "subject", q.Subject); err != nil {
		return err
	}
	return tooLong(maxMessageLen, "message", q.Message)
}

func (q *Inquiry) body() string {
	var sb strings.Builder
	sb.WriteString("## Contact form\n\n")
	field(&sb, "Name", q.Name)
	field(&sb, "Email", q.Email)
	field(&sb, "Phone", q.Phone)
	field(&sb, "Subject", q.Subject)
	paragraph(&sb, "Message", q.Message)
	return sb.String()
}

// field writes a bold label and escaped value as a list item. Empty values
// are skipped.
func field(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(sb, "- **%s:** %s\n", label, markdown.Escape(value))
}

func list(sb *strings.Builder, label string, items []string) {
	escaped := make([]string, 0, len(items))
	for _, it := range items {
		if it = markdown.Escape(it); it != "" {
			escaped = append(escaped, it)
		}
	}
	if len(escaped) == 0 {
		return
	}
	fmt.Fprintf(sb, "- **%s:** %s\n", label, strings.Join(escaped, ", "))
}

// paragraph writes free text under a heading, keeping the visitor's line
// breaks as separate escaped paragraphs.
func paragraph(sb *strings.Builder, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(sb, "\n**%s**\n\n", label)
	for _, line := range strings.Split(text, "\n") {
		if line = markdown.Escape(line); line != "" {
			sb.WriteString(line + "\n\n")
		}
	}
}
