// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
	"expostudio/internal/normalize"
	"expostudio/internal/site"
)

// --- Brand palette ---

// PaletteBrief asks for a brand colour palette, from a logo image, a
// company description, or both.
type PaletteBrief struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Mood        string `json:"mood"`
	Count       int    `json:"count"`
	Logo        string `json:"logo"` // base64 or data URL
}

// PaletteResult holds strictly valid hex colours.
type PaletteResult struct {
	Colors []string `json:"colors"`
}

var paletteSchema = ai.Object(map[string]*ai.Schema{
	"colors": ai.StringList("Hex colours in #RRGGBB form, most dominant first."),
}, "colors")

// Palette extracts or proposes brand colours. Entries that are not #RGB or
// #RRGGBB are dropped silently.
func (s *Service) Palette(ctx context.Context, brief PaletteBrief) (*PaletteResult, error) {
	if blank(brief.CompanyName) && blank(brief.Logo) {
		return nil, missingField("companyName or logo")
	}
	if err := checkLengths("companyName", brief.CompanyName, "industry", brief.Industry, "mood", brief.Mood); err != nil {
		return nil, err
	}
	var logo *ai.Image
	if !blank(brief.Logo) {
		img, err := decodeImage(brief.Logo)
		if err != nil {
			return nil, err
		}
		logo = img
	}
	if brief.Count <= 0 || brief.Count > 10 {
		brief.Count = 5
	}
	if err := s.requireBackend(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	if logo != nil {
		fmt.Fprintf(&sb, "Extract the %d most prominent brand colours from the attached logo.", brief.Count)
	} else {
		fmt.Fprintf(&sb, "Propose a %d-colour brand palette", brief.Count)
		fmt.Fprintf(&sb, " for %s", brief.CompanyName)
		if brief.Industry != "" {
			fmt.Fprintf(&sb, ", a %s company", brief.Industry)
		}
		sb.WriteString(".")
	}
	if brief.Mood != "" {
		fmt.Fprintf(&sb, " Desired mood: %s.", brief.Mood)
	}
	sb.WriteString(" Return colours as hex codes.")

	req := ai.JSONRequest{Prompt: sb.String(), Schema: paletteSchema}
	if logo != nil {
		req.Images = []ai.Image{*logo}
	}

	text, err := s.backend.GenerateJSON(ctx, req)
	if err != nil {
		return nil, upstream(err)
	}

	var out PaletteResult
	if err := normalize.DecodeJSON(text, paletteSchema, &out); err != nil {
		return nil, err
	}
	out.Colors = normalize.HexColors(out.Colors)
	return &out, nil
}

// decodeImage accepts raw base64 or a data URL and sniffs the content type.
func decodeImage(encoded string) (*ai.Image, error) {
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i > 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil || len(data) == 0 {
		return nil, apperr.New(apperr.Validation, "logo must be a base64-encoded image.")
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, apperr.New(apperr.Validation, "logo must be a PNG, JPEG, GIF or WebP image.")
	}
	return &ai.Image{Data: data, MimeType: mimeType}, nil
}

// --- Style matching ---

// StyleBrief asks which of the caller's styles best fits a description.
type StyleBrief struct {
	Description string   `json:"description"`
	Styles      []string `json:"styles"`
}

// StyleResult is the chosen style and a one-sentence reason.
type StyleResult struct {
	Style  string `json:"style"`
	Reason string `json:"reason"`
}

// MatchStyle picks one style from brief.Styles. The backend is constrained
// by an enum schema, and its answer is checked against the same enum.
func (s *Service) MatchStyle(ctx context.Context, brief StyleBrief) (*StyleResult, error) {
	if blank(brief.Description) {
		return nil, missingField("description")
	}
	if err := checkLengths("description", brief.Description, "styles", strings.Join(brief.Styles, ", ")); err != nil {
		return nil, err
	}
	styles := make([]string, 0, len(brief.Styles))
	for _, st := range brief.Styles {
		if st = strings.TrimSpace(st); st != "" && !slices.Contains(styles, st) {
			styles = append(styles, st)
		}
	}
	if len(styles) == 0 {
		return nil, missingField("styles")
	}
	if err := s.requireBackend(); err != nil {
		return nil, err
	}

	schema := ai.Object(map[string]*ai.Schema{
		"style":  ai.Enum("The single best matching style.", styles...),
		"reason": ai.String("One sentence explaining the choice."),
	}, "style", "reason")

	prompt := fmt.Sprintf(
		"A client describes their project as: %q.\nChoose the best matching design style from: %s.",
		brief.Description, strings.Join(styles, ", "),
	)

	text, err := s.backend.GenerateJSON(ctx, ai.JSONRequest{
		System: designerSystemPrompt,
		Prompt: prompt,
		Schema: schema,
	})
	if err != nil {
		return nil, upstream(err)
	}

	var out StyleResult
	if err := normalize.DecodeJSON(text, schema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- SEO metadata ---

// SEOMeta is generated search metadata for one page.
type SEOMeta struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

var seoSchema = ai.Object(map[string]*ai.Schema{
	"title":       ai.String("SEO title, at most 60 characters."),
	"description": ai.String("Meta description, at most 160 characters."),
	"keywords":    ai.StringList("Five to eight search keywords."),
}, "title", "description", "keywords")

// SEO generates metadata for every requested page concurrently. An empty
// paths list means every catalogue page. If any page fails, the whole batch
// fails and no partial results are returned.
func (s *Service) SEO(ctx context.Context, paths []string) ([]SEOMeta, error) {
	pages, err := s.resolvePages(paths)
	if err != nil {
		return nil, err
	}
	if err := s.requireBackend(); err != nil {
		return nil, err
	}

	company := s.catalogue.Company()
	results := make([]SEOMeta, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	for i, page := range pages {
		g.Go(func() error {
			prompt := fmt.Sprintf(
				"Write SEO metadata for the page %q of %s (%s).\nPage title: %s\nPage summary: %s\nTarget searchers in Dubai and the UAE.",
				page.Path, company.Name, company.Tagline, page.Title, page.Summary,
			)
			text, err := s.backend.GenerateJSON(gctx, ai.JSONRequest{Prompt: prompt, Schema: seoSchema})
			if err != nil {
				return upstream(fmt.Errorf("seo %s: %w", page.Path, err))
			}
			var meta SEOMeta
			if err := normalize.DecodeJSON(text, seoSchema, &meta); err != nil {
				return err
			}
			meta.Path = page.Path
			results[i] = meta
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) resolvePages(paths []string) ([]site.Page, error) {
	if s.catalogue == nil {
		return nil, apperr.New(apperr.Configuration, "Site catalogue is not loaded.")
	}
	if len(paths) == 0 {
		return s.catalogue.Pages(), nil
	}
	pages := make([]site.Page, 0, len(paths))
	for _, p := range paths {
		page, ok := s.catalogue.Page(p)
		if !ok {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("Unknown page path: %s.", p))
		}
		pages = append(pages, page)
	}
	return pages, nil
}
