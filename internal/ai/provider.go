// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai talks to the hosted generative backend. It exposes three
// capabilities (structured text, image and long-running video generation)
// as small interfaces so the orchestrator can be tested against fakes, and
// one concrete implementation over the Gemini REST API.
package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// ErrNoImage is returned when a generation response carries no inline image part.
var ErrNoImage = errors.New("ai: no image data in response")

// ErrNoText is returned when a generation response carries no text part.
var ErrNoText = errors.New("ai: no text in response")

// JSONRequest describes a structured-output text generation call.
type JSONRequest struct {
	System string  // model behaviour; may be empty
	Prompt string  // user-facing instruction
	Schema *Schema // response shape the backend must follow
	Images []Image // optional inline images sent after the prompt
}

// Image is raw image bytes with their MIME type, used both for generated
// images and for inline inputs.
type Image struct {
	Data     []byte
	MimeType string
}

// VideoRequest describes a video generation job. Zero values fall back to
// the fixed defaults: 16:9, 720p, one sample.
type VideoRequest struct {
	Prompt      string
	AspectRatio string
	Resolution  string
}

// VideoOperation is the backend's view of a long-running video job.
type VideoOperation struct {
	Name     string // opaque handle used for polling
	Done     bool
	VideoURI string // set when Done and successful
	Error    string // set when Done and failed
}

// TextGenerator produces JSON text constrained by a response schema.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, req JSONRequest) (string, error)
}

// ImageGenerator produces a single image from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*Image, error)
}

// VideoGenerator submits and tracks long-running video jobs.
type VideoGenerator interface {
	StartVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error)
	VideoStatus(ctx context.Context, name string) (*VideoOperation, error)
	// DownloadVideo streams the finished file. The caller closes the reader.
	DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Backend is everything the orchestrator needs from the generative service.
type Backend interface {
	TextGenerator
	ImageGenerator
	VideoGenerator
}

// Options configures the Gemini client. Empty models and base URL fall back
// to the defaults below.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	VideoModel string
	HTTPClient *http.Client
}

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
	DefaultVideoModel = "veo-3.0-generate-001"
)

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.TextModel == "" {
		o.TextModel = DefaultTextModel
	}
	if o.ImageModel == "" {
		o.ImageModel = DefaultImageModel
	}
	if o.VideoModel == "" {
		o.VideoModel = DefaultVideoModel
	}
	if o.HTTPClient == nil {
		// Image generation regularly takes 20-40s.
		o.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	return o
}
