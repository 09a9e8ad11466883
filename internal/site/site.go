// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site holds the static facts about the company and its public
// pages. The catalogue is embedded in the binary, parsed once at startup and
// never mutated; it feeds the sitemap, the LLM context document, SEO
// generation and the hero video keyword library.
package site

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Company is the public company profile.
type Company struct {
	Name        string `yaml:"name"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
	Founded     int    `yaml:"founded"`
}

// Service is one line of business.
type Service struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Summary string `yaml:"summary"`
}

// Page is a public route listed in the sitemap.
type Page struct {
	Path       string  `yaml:"path" json:"path"`
	Title      string  `yaml:"title" json:"title"`
	Summary    string  `yaml:"summary" json:"summary"`
	Priority   float64 `yaml:"priority" json:"-"`
	ChangeFreq string  `yaml:"changefreq" json:"-"`
}

// HeroVideo maps a theme and its keywords to a video generation prompt.
type HeroVideo struct {
	Key      string   `yaml:"key"`
	Keywords []string `yaml:"keywords"`
	Prompt   string   `yaml:"prompt"`
}

// Catalogue is the immutable site configuration. Use the accessor methods;
// they return copies so callers cannot mutate shared state.
type Catalogue struct {
	company    Company
	services   []Service
	pages      []Page
	heroVideos []HeroVideo
}

type catalogueFile struct {
	Company    Company     `yaml:"company"`
	Services   []Service   `yaml:"services"`
	Pages      []Page      `yaml:"pages"`
	HeroVideos []HeroVideo `yaml:"hero_videos"`
}

// Load parses the embedded catalogue.
func Load() (*Catalogue, error) {
	return Parse(catalogueYAML)
}

// Parse builds a catalogue from YAML and checks the fields every consumer
// relies on.
func Parse(data []byte) (*Catalogue, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	if f.Company.Name == "" {
		return nil, fmt.Errorf("catalogue: company name is required")
	}
	seen := make(map[string]bool, len(f.Pages))
	for i, p := range f.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			return nil, fmt.Errorf("catalogue: page %d path %q must start with /", i, p.Path)
		}
		if seen[p.Path] {
			return nil, fmt.Errorf("catalogue: duplicate page path %q", p.Path)
		}
		seen[p.Path] = true
	}
	for i, v := range f.HeroVideos {
		if v.Key == "" || v.Prompt == "" {
			return nil, fmt.Errorf("catalogue: hero video %d needs a key and a prompt", i)
		}
	}

	return &Catalogue{
		company:    f.Company,
		services:   f.Services,
		pages:      f.Pages,
		heroVideos: f.HeroVideos,
	}, nil
}

// Company returns the company profile.
func (c *Catalogue) Company() Company { return c.company }

// Services returns a copy of the service list.
func (c *Catalogue) Services() []Service { return slices.Clone(c.services) }

// Pages returns a copy of the page list.
func (c *Catalogue) Pages() []Page { return slices.Clone(c.pages) }

// Page looks up a page by path.
func (c *Catalogue) Page(path string) (Page, bool) {
	for _, p := range c.pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// HeroVideo finds the library entry for theme, matching the key first and
// then any keyword contained in theme. Matching is case-insensitive.
func (c *Catalogue) HeroVideo(theme string) (HeroVideo, bool) {
	t := strings.ToLower(strings.TrimSpace(theme))
	if t == "" {
		return HeroVideo{}, false
	}
	for _, v := range c.heroVideos {
		if strings.ToLower(v.Key) == t {
			return cloneVideo(v), true
		}
	}
	for _, v := range c.heroVideos {
		for _, kw := range v.Keywords {
			if strings.Contains(t, strings.ToLower(kw)) {
				return cloneVideo(v), true
			}
		}
	}
	return HeroVideo{}, false
}

func cloneVideo(v HeroVideo) HeroVideo {
	v.Keywords = slices.Clone(v.Keywords)
	return v
}
