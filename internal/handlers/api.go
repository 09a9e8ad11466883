// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public JSON API and the generated site
// documents. Each API handler checks the method itself, decodes the body,
// delegates to the studio or notifier, and writes a flat JSON response.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"expostudio/internal/apperr"
	"expostudio/internal/middleware"
	"expostudio/internal/notify"
	"expostudio/internal/site"
	"expostudio/internal/studio"
)

// MaxBodyBytes caps request bodies. It leaves room for a base64 logo.
const MaxBodyBytes = 5 << 20

// Options holds the collaborators the API delegates to.
type Options struct {
	Studio    *studio.Service
	Notifier  *notify.Notifier
	Catalogue *site.Catalogue
	SiteURL   string
	// VideoTimeout bounds how long the video handler may keep the
	// connection open. Zero keeps the server's write timeout.
	VideoTimeout time.Duration
}

// API groups the HTTP handlers.
type API struct {
	studio       *studio.Service
	notifier     *notify.Notifier
	catalogue    *site.Catalogue
	siteURL      string
	videoTimeout time.Duration
	started      time.Time
}

// New creates the API handlers.
func New(opts Options) *API {
	return &API{
		studio:       opts.Studio,
		notifier:     opts.Notifier,
		catalogue:    opts.Catalogue,
		siteURL:      opts.SiteURL,
		videoTimeout: opts.VideoTimeout,
		started:      time.Now().UTC(),
	}
}

// Configured reports which optional backends are available.
func (a *API) Configured() map[string]bool {
	return map[string]bool{
		"ai":   a.studio.Configured(),
		"mail": a.notifier.Configured(),
	}
}

// requirePOST rejects any other method with a JSON 405.
func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, r, apperr.New(apperr.MethodNotAllowed, "Method not allowed."))
	return false
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Wrap(apperr.Validation, "Request body is too large.", err)
		}
		return apperr.Wrap(apperr.Validation, "Invalid JSON body.", err)
	}
	return nil
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError logs err with its cause and sends the flat {"error"} body.
// Only the classified user-safe message reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	attrs := []any{
		"error", err,
		"kind", apperr.KindOf(err).String(),
		"path", r.URL.Path,
		"request_id", middleware.RequestID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Info("request rejected", attrs...)
	}
	writeJSON(w, status, map[string]string{"error": apperr.Message(err)})
}
