// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package studio orchestrates generative requests: it validates a visitor's
// brief, composes prompts, calls the generative backend, normalizes what
// comes back and assembles a single result. Each call is independent; the
// Service holds only immutable configuration.
package studio

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
	"expostudio/internal/site"
)

// MediaArchive stores generated media and returns a public URL.
type MediaArchive interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Options configures a Service. Zero video values fall back to a 10s
// interval and 60 polls.
type Options struct {
	Catalogue         *site.Catalogue
	Archive           MediaArchive // optional
	VideoPollInterval time.Duration
	VideoMaxPolls     int
}

// Service runs the generate, validate, compose flows.
type Service struct {
	backend      ai.Backend
	catalogue    *site.Catalogue
	archive      MediaArchive
	pollInterval time.Duration
	maxPolls     int
}

// New creates a Service. backend may be nil when no credential is
// configured; every generative operation then fails with a configuration
// error after the brief has been validated.
func New(backend ai.Backend, opts Options) *Service {
	if opts.VideoPollInterval <= 0 {
		opts.VideoPollInterval = 10 * time.Second
	}
	if opts.VideoMaxPolls <= 0 {
		opts.VideoMaxPolls = 60
	}
	return &Service{
		backend:      backend,
		catalogue:    opts.Catalogue,
		archive:      opts.Archive,
		pollInterval: opts.VideoPollInterval,
		maxPolls:     opts.VideoMaxPolls,
	}
}

// Configured reports whether a generative backend is available.
func (s *Service) Configured() bool {
	return s.backend != nil
}

func (s *Service) requireBackend() error {
	if s.backend == nil {
		return apperr.NotConfigured("GEMINI_API_KEY")
	}
	return nil
}

// upstream classifies a backend call failure.
func upstream(err error) error {
	return apperr.Wrap(apperr.Upstream, "AI request failed. Please try again.", err)
}

// missingField reports an absent required input.
func missingField(name string) error {
	return apperr.New(apperr.Validation, "Missing required field: "+name+".")
}

// maxTextLen bounds any single visitor-supplied text that ends up in a prompt.
const maxTextLen = 2000

// checkLengths takes field name and value pairs and reports the first value
// longer than maxTextLen.
func checkLengths(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if utf8.RuneCountInString(pairs[i+1]) > maxTextLen {
			return apperr.New(apperr.Validation, fmt.Sprintf("%s is too long (max %d characters).", pairs[i], maxTextLen))
		}
	}
	return nil
}
