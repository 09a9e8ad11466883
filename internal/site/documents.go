// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders the sitemap.xml document for every catalogue page.
// baseURL must not end with a slash; lastmod is the given date.
func (c *Catalogue) Sitemap(baseURL string, lastMod time.Time) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS}
	date := lastMod.UTC().Format("2006-01-02")

	for _, p := range c.pages {
		u := sitemapURL{
			Loc:        strings.TrimRight(baseURL, "/") + p.Path,
			LastMod:    date,
			ChangeFreq: p.ChangeFreq,
		}
		if p.Priority > 0 {
			u.Priority = strconv.FormatFloat(p.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, u)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// LLMContext renders the llms.txt Markdown document that describes the
// company, its services and its pages to language-model crawlers.
func (c *Catalogue) LLMContext(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.company.Name)
	if c.company.Tagline != "" {
		fmt.Fprintf(&b, "> %s\n\n", c.company.Tagline)
	}
	if c.company.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(c.company.Description))
	}

	if len(c.services) > 0 {
		b.WriteString("## Services\n\n")
		for _, s := range c.services {
			fmt.Fprintf(&b, "- [%s](%s%s): %s\n", s.Name, base, s.Path, s.Summary)
		}
		b.WriteString("\n")
	}

	if len(c.pages) > 0 {
		b.WriteString("## Pages\n\n")
		for _, p := range c.pages {
			fmt.Fprintf(&b, "- [%s](%s%s): %s\n", p.Title, base, p.Path, p.Summary)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Contact\n\n")
	if c.company.Email != "" {
		fmt.Fprintf(&b, "- Email: %s\n", c.company.Email)
	}
	if c.company.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", c.company.Phone)
	}
	if c.company.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", c.company.Address)
	}

	return b.String()
}
