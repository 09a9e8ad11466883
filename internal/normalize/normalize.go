// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package normalize turns raw model output into validated Go values. Text is
// trimmed and unfenced, parsed as JSON, checked against the response schema
// that was sent with the request, and only then decoded into the target.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
)

// hexColor matches #RGB and #RRGGBB, case-insensitively.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// HexColors keeps only strict hex colour strings, preserving order. Entries
// are not trimmed or repaired; anything else is dropped silently.
func HexColors(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		if hexColor.MatchString(c) {
			out = append(out, c)
		}
	}
	return out
}

// SchemaViolation describes the first place model output diverged from its schema.
type SchemaViolation struct {
	Path   string
	Reason string
}

func (v *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", v.Path, v.Reason)
}

// DecodeJSON parses text against schema into dst. Non-JSON text fails with
// apperr.UpstreamFormat; JSON that does not fit the schema fails with
// apperr.SchemaViolation wrapping a *SchemaViolation.
func DecodeJSON(text string, schema *ai.Schema, dst any) error {
	cleaned := stripFence(strings.TrimSpace(text))

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return apperr.Wrap(apperr.UpstreamFormat, "AI returned an invalid JSON response.", err)
	}

	if schema != nil {
		if v := Validate(raw, schema); v != nil {
			return apperr.Wrap(apperr.SchemaViolation, "AI response did not match the expected format.", v)
		}
	}

	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return apperr.Wrap(apperr.UpstreamFormat, "AI returned an invalid JSON response.", err)
	}
	return nil
}

// stripFence removes a surrounding Markdown code fence (``` or ```json).
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
