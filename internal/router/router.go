// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains: the
// rate-limited JSON API under /api and the generated site documents.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"expostudio/internal/handlers"
	"expostudio/internal/middleware"
)

// New creates the Chi router with all middleware and routes wired up.
// limiter may be nil to disable rate limiting.
func New(api *handlers.API, limiter middleware.Limiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler(api))
	r.Get("/sitemap.xml", api.Sitemap)
	r.Get("/llms.txt", api.LLMs)

	// API handlers check the method themselves so every verb gets the
	// JSON 405 rather than the router's plain-text one.
	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter))
		}

		r.HandleFunc("/generate-exhibition-design", api.ExhibitionDesign)
		r.HandleFunc("/generate-event-design", api.EventDesign)
		r.HandleFunc("/generate-interior-design", api.InteriorDesign)
		r.HandleFunc("/generate-color-palette", api.ColorPalette)
		r.HandleFunc("/suggest-style", api.SuggestStyle)
		r.HandleFunc("/generate-seo", api.SEO)
		r.HandleFunc("/generate-video", api.Video)

		r.HandleFunc("/lead", api.Lead)
		r.HandleFunc("/send-proposal", api.Proposal)
		r.HandleFunc("/contact", api.Contact)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found."})
	})

	return r
}

// healthHandler reports liveness and which optional backends are wired.
func healthHandler(api *handlers.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"configured": api.Configured(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
