// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
)

// Sitemap handles GET /sitemap.xml. Pages carry the server start time as
// their last modification, since the catalogue only changes on deploy.
func (a *API) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := a.catalogue.Sitemap(a.siteURL, a.started)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// LLMs handles GET /llms.txt.
func (a *API) LLMs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(a.catalogue.LLMContext(a.siteURL)))
}
