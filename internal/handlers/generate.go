// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"expostudio/internal/studio"
)

// ExhibitionDesign handles POST /api/generate-exhibition-design.
func (a *API) ExhibitionDesign(w http.ResponseWriter, r *http.Request) {
	a.design(w, r, &studio.ExhibitionBrief{})
}

// EventDesign handles POST /api/generate-event-design.
func (a *API) EventDesign(w http.ResponseWriter, r *http.Request) {
	a.design(w, r, &studio.EventBrief{})
}

// InteriorDesign handles POST /api/generate-interior-design.
func (a *API) InteriorDesign(w http.ResponseWriter, r *http.Request) {
	a.design(w, r, &studio.InteriorBrief{})
}

func (a *API) design(w http.ResponseWriter, r *http.Request, brief studio.Brief) {
	if !requirePOST(w, r) {
		return
	}
	if err := decodeJSON(w, r, brief); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.studio.Design(r.Context(), brief)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ColorPalette handles POST /api/generate-color-palette.
func (a *API) ColorPalette(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var brief studio.PaletteBrief
	if err := decodeJSON(w, r, &brief); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.studio.Palette(r.Context(), brief)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SuggestStyle handles POST /api/suggest-style.
func (a *API) SuggestStyle(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var brief studio.StyleBrief
	if err := decodeJSON(w, r, &brief); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := a.studio.MatchStyle(r.Context(), brief)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type seoRequest struct {
	Paths []string `json:"paths"`
}

// SEO handles POST /api/generate-seo. An empty paths list means every page.
func (a *API) SEO(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var req seoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pages, err := a.studio.SEO(r.Context(), req.Paths)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// Video handles POST /api/generate-video. The connection stays open while
// the job is polled, then the file is streamed as video/mp4. A client
// disconnect cancels polling.
func (a *API) Video(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var brief studio.VideoBrief
	if err := decodeJSON(w, r, &brief); err != nil {
		writeError(w, r, err)
		return
	}

	if a.videoTimeout > 0 {
		rc := http.NewResponseController(w)
		if err := rc.SetWriteDeadline(time.Now().Add(a.videoTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Warn("extend write deadline failed", "error", err)
		}
	}

	stream, err := a.studio.Video(r.Context(), brief)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", stream.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if n, err := io.Copy(w, stream); err != nil {
		slog.Warn("video stream interrupted", "error", err, "bytes", n)
	}
}
