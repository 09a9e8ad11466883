// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Gemini implements Backend using the Google Gemini REST API
// (generateContent for text and images, predictLongRunning for video).
type Gemini struct {
	opts   Options
	client *http.Client
	// download shares client's transport without its overall timeout; the
	// video body is streamed to the visitor and bounded by the request ctx.
	download *http.Client
}

// NewGemini creates a Gemini client. The API key is sent in the
// x-goog-api-key header and never placed in URLs.
func NewGemini(opts Options) *Gemini {
	opts = opts.withDefaults()
	download := *opts.HTTPClient
	download.Timeout = 0
	return &Gemini{
		opts:     opts,
		client:   opts.HTTPClient,
		download: &download,
	}
}

// GenerateJSON sends a generateContent request with a response schema and
// returns the first text part verbatim. Parsing is the caller's job.
func (g *Gemini) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	parts := []geminiPart{{Text: req.Prompt}}
	for _, img := range req.Images {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: parts},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	var result geminiResponse
	if err := g.generate(ctx, g.opts.TextModel, body, &result); err != nil {
		return "", err
	}

	for _, c := range result.Candidates {
		for _, part := range c.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", ErrNoText
}

// GenerateImage asks the image model for a picture and returns the first
// inline binary part found across all candidates.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	var result geminiResponse
	if err := g.generate(ctx, g.opts.ImageModel, body, &result); err != nil {
		return nil, err
	}

	for _, c := range result.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini image decode base64: %w", err)
			}
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &Image{Data: data, MimeType: mimeType}, nil
		}
	}

	return nil, ErrNoImage
}

// generate posts body to models/{model}:generateContent and decodes the reply.
func (g *Gemini) generate(ctx context.Context, model string, body geminiRequest, out *geminiResponse) error {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.opts.BaseURL, model)
	return g.doJSON(ctx, http.MethodPost, url, body, out)
}

// doJSON performs an authenticated JSON round trip. Non-2xx responses are
// turned into errors carrying the API's own message when one is present.
func (g *Gemini) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gemini marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("gemini request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-goog-api-key", g.opts.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gemini unmarshal: %w", err)
	}
	return nil
}

// apiError extracts error.message from a Gemini error envelope, falling
// back to the raw body.
func apiError(status int, body []byte) error {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		return fmt.Errorf("gemini API error (status %d %s): %s", status, envelope.Error.Status, envelope.Error.Message)
	}
	return fmt.Errorf("gemini API error (status %d): %s", status, strings.TrimSpace(string(body)))
}

// --- Gemini API types ---

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema  `json:"responseSchema,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
