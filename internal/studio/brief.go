// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"fmt"
	"strings"

	"expostudio/internal/ai"
)

// Brief is a visitor's design request for one of the three design services.
type Brief interface {
	// Kind names the service ("exhibition", "event", "interior").
	Kind() string
	// Validate reports the first missing required field.
	Validate() error
	// ConceptPrompt describes the request for the text step.
	ConceptPrompt() string
	// ImagePrompt describes the render for the image step, embedding the
	// concept fields verbatim.
	ImagePrompt(c DesignConcept) string
}

// DesignConcept is the structured design description produced by the text
// step. It is created once per request and never mutated afterwards.
type DesignConcept struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Materials    []string `json:"materials"`
	Lighting     string   `json:"lighting"`
	Technology   []string `json:"technology"`
	ColorPalette []string `json:"colorPalette"`
}

// conceptSchema lists the exact keys the text step must return.
var conceptSchema = ai.Object(map[string]*ai.Schema{
	"name":         ai.String("A short, memorable name for the concept."),
	"description":  ai.String("Two to four sentences describing layout, zones and visitor experience."),
	"materials":    ai.StringList("Key materials and finishes."),
	"lighting":     ai.String("Lighting design approach."),
	"technology":   ai.StringList("Audio-visual and interactive technology."),
	"colorPalette": ai.StringList("Four to six hex colours such as #1A2B3C."),
}, "name", "description", "materials", "lighting", "technology", "colorPalette")

const designerSystemPrompt = `You are the lead designer at a Dubai design-and-build studio that delivers exhibition stands, corporate and social events, and commercial interiors across the UAE. Your concepts are buildable within local venue rules, climate and budgets. Answer only with JSON matching the provided schema.`

// ExhibitionBrief requests an exhibition stand concept.
type ExhibitionBrief struct {
	CompanyName string   `json:"companyName"`
	Industry    string   `json:"industry"`
	BoothSize   string   `json:"boothSize"`
	Style       string   `json:"style"`
	Features    []string `json:"features"`
	Budget      string   `json:"budget"`
	BrandColors []string `json:"brandColors"`
}

func (b *ExhibitionBrief) Kind() string { return "exhibition" }

func (b *ExhibitionBrief) Validate() error {
	switch {
	case blank(b.CompanyName):
		return missingField("companyName")
	case blank(b.BoothSize):
		return missingField("boothSize")
	case blank(b.Style):
		return missingField("style")
	}
	return checkLengths(
		"companyName", b.CompanyName, "industry", b.Industry, "boothSize", b.BoothSize,
		"style", b.Style, "budget", b.Budget, "features", strings.Join(b.Features, ", "),
	)
}

func (b *ExhibitionBrief) ConceptPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an exhibition stand concept for %s", b.CompanyName)
	if b.Industry != "" {
		fmt.Fprintf(&sb, ", a company in the %s industry", b.Industry)
	}
	sb.WriteString(".\n")
	fmt.Fprintf(&sb, "Stand size: %s.\n", b.BoothSize)
	fmt.Fprintf(&sb, "Design style: %s.\n", b.Style)
	writeList(&sb, "Required features", b.Features)
	writeList(&sb, "Brand colours to incorporate", b.BrandColors)
	if b.Budget != "" {
		fmt.Fprintf(&sb, "Budget: %s.\n", b.Budget)
	}
	sb.WriteString("The stand will be built for a major Dubai venue such as the Dubai World Trade Centre.")
	return sb.String()
}

func (b *ExhibitionBrief) ImagePrompt(c DesignConcept) string {
	return renderPrompt(
		fmt.Sprintf("a %s exhibition stand for %s at a Dubai trade show", b.BoothSize, b.CompanyName),
		c,
	)
}

// EventBrief requests an event design concept.
type EventBrief struct {
	EventType  string   `json:"eventType"`
	GuestCount int      `json:"guestCount"`
	Venue      string   `json:"venue"`
	Theme      string   `json:"theme"`
	Features   []string `json:"features"`
	Budget     string   `json:"budget"`
}

func (b *EventBrief) Kind() string { return "event" }

func (b *EventBrief) Validate() error {
	switch {
	case blank(b.EventType):
		return missingField("eventType")
	case b.GuestCount <= 0:
		return missingField("guestCount")
	case blank(b.Venue):
		return missingField("venue")
	case blank(b.Theme):
		return missingField("theme")
	}
	return checkLengths(
		"eventType", b.EventType, "venue", b.Venue, "theme", b.Theme,
		"budget", b.Budget, "features", strings.Join(b.Features, ", "),
	)
}

func (b *EventBrief) ConceptPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an event design concept for a %s.\n", b.EventType)
	fmt.Fprintf(&sb, "Guests: %d.\n", b.GuestCount)
	fmt.Fprintf(&sb, "Venue: %s.\n", b.Venue)
	fmt.Fprintf(&sb, "Theme: %s.\n", b.Theme)
	writeList(&sb, "Required features", b.Features)
	if b.Budget != "" {
		fmt.Fprintf(&sb, "Budget: %s.\n", b.Budget)
	}
	sb.WriteString("Cover stage, seating layout, decor and guest flow.")
	return sb.String()
}

func (b *EventBrief) ImagePrompt(c DesignConcept) string {
	return renderPrompt(
		fmt.Sprintf("a %s for %d guests at %s in Dubai, themed %q", b.EventType, b.GuestCount, b.Venue, b.Theme),
		c,
	)
}

// InteriorBrief requests an interior design concept.
type InteriorBrief struct {
	SpaceType string   `json:"spaceType"`
	Area      string   `json:"area"`
	Style     string   `json:"style"`
	Features  []string `json:"features"`
	Budget    string   `json:"budget"`
}

func (b *InteriorBrief) Kind() string { return "interior" }

func (b *InteriorBrief) Validate() error {
	switch {
	case blank(b.SpaceType):
		return missingField("spaceType")
	case blank(b.Area):
		return missingField("area")
	case blank(b.Style):
		return missingField("style")
	}
	return checkLengths(
		"spaceType", b.SpaceType, "area", b.Area, "style", b.Style,
		"budget", b.Budget, "features", strings.Join(b.Features, ", "),
	)
}

func (b *InteriorBrief) ConceptPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an interior design concept for a %s.\n", b.SpaceType)
	fmt.Fprintf(&sb, "Area: %s.\n", b.Area)
	fmt.Fprintf(&sb, "Design style: %s.\n", b.Style)
	writeList(&sb, "Required features", b.Features)
	if b.Budget != "" {
		fmt.Fprintf(&sb, "Budget: %s.\n", b.Budget)
	}
	sb.WriteString("The space is in Dubai; account for strong daylight and year-round cooling.")
	return sb.String()
}

func (b *InteriorBrief) ImagePrompt(c DesignConcept) string {
	return renderPrompt(
		fmt.Sprintf("a %s %s interior in Dubai, %s", b.Style, b.SpaceType, b.Area),
		c,
	)
}

// renderPrompt builds the image-step prompt. Concept fields are embedded
// exactly as the text step returned them.
func renderPrompt(subject string, c DesignConcept) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Photorealistic architectural visualization of %s.\n", subject)
	fmt.Fprintf(&sb, "Concept: %s. %s\n", c.Name, c.Description)
	writeList(&sb, "Materials", c.Materials)
	if c.Lighting != "" {
		fmt.Fprintf(&sb, "Lighting: %s.\n", c.Lighting)
	}
	writeList(&sb, "Technology", c.Technology)
	writeList(&sb, "Colour palette", c.ColorPalette)
	sb.WriteString("Wide-angle three-quarter view, high detail, professional render, no text or watermarks.")
	return sb.String()
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s: %s.\n", label, strings.Join(items, ", "))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
