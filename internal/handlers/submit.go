// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"expostudio/internal/notify"
)

var success = map[string]bool{"success": true}

// Lead handles POST /api/lead. Delivery problems never fail the request.
func (a *API) Lead(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var lead notify.Lead
	if err := decodeJSON(w, r, &lead); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.notifier.Lead(r.Context(), lead); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// Proposal handles POST /api/send-proposal.
func (a *API) Proposal(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var req notify.ProposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.notifier.Proposal(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// Contact handles POST /api/contact.
func (a *API) Contact(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}
	var q notify.Inquiry
	if err := decodeJSON(w, r, &q); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.notifier.Inquiry(r.Context(), q); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, success)
}
