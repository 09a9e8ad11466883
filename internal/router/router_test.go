// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the route table, middleware chains, and the
// health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expostudio/internal/handlers"
	"expostudio/internal/middleware"
	"expostudio/internal/notify"
	"expostudio/internal/site"
	"expostudio/internal/studio"
)

func testAPI(t *testing.T) *handlers.API {
	t.Helper()
	cat, err := site.Load()
	if err != nil {
		t.Fatalf("site.Load: %v", err)
	}
	return handlers.New(handlers.Options{
		Studio:    studio.New(nil, studio.Options{Catalogue: cat}),
		Notifier:  notify.New(nil, "", ""),
		Catalogue: cat,
		SiteURL:   "https://expostudio.example",
	})
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	New(testAPI(t), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}

	var body struct {
		Status     string          `json:"status"`
		Configured map[string]bool `json:"configured"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status field: got %q, want ok", body.Status)
	}
	if body.Configured["ai"] || body.Configured["mail"] {
		t.Errorf("configured = %v, want all false", body.Configured)
	}
}

func TestRoutes(t *testing.T) {
	r := New(testAPI(t), nil)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/sitemap.xml", http.StatusOK},
		{http.MethodGet, "/llms.txt", http.StatusOK},
		{http.MethodGet, "/api/generate-exhibition-design", http.StatusMethodNotAllowed},
		{http.MethodPut, "/api/lead", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/generate-event-design", http.StatusBadRequest},
		{http.MethodPost, "/api/generate-interior-design", http.StatusBadRequest},
		{http.MethodPost, "/api/generate-color-palette", http.StatusBadRequest},
		{http.MethodPost, "/api/suggest-style", http.StatusBadRequest},
		{http.MethodPost, "/api/generate-seo", http.StatusBadRequest},
		{http.MethodPost, "/api/generate-video", http.StatusBadRequest},
		{http.MethodPost, "/api/send-proposal", http.StatusBadRequest},
		{http.MethodPost, "/api/contact", http.StatusBadRequest},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader("not json")))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want >= 400 && !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body = %q, want JSON error", rec.Body.String())
			}
		})
	}
}

func TestGlobalMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	New(testAPI(t), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	r := New(testAPI(t), denyAll{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader("{}")))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("api status = %d, want 429", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}
