// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error taxonomy shared by the orchestrator,
// the mailer and the HTTP handlers. Every error that reaches a handler is
// converted to an HTTP status and a user-safe message through Status and
// Message; the underlying cause is only ever logged.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Internal is the zero Kind, used for errors nobody classified.
	Internal Kind = iota
	MethodNotAllowed
	Validation
	Configuration
	UpstreamFormat
	SchemaViolation
	Generation
	Upstream
	Mail
)

// String returns a short, log-friendly name for the kind.
func (k Kind) String() string {
	switch k {
	case MethodNotAllowed:
		return "method_not_allowed"
	case Validation:
		return "validation"
	case Configuration:
		return "configuration"
	case UpstreamFormat:
		return "upstream_format"
	case SchemaViolation:
		return "schema_violation"
	case Generation:
		return "generation"
	case Upstream:
		return "upstream"
	case Mail:
		return "mail"
	default:
		return "internal"
	}
}

// Status maps the kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Message is safe to show to the visitor;
// Err carries the cause and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a classified error around err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotConfigured reports a missing server-side setting.
func NotConfigured(setting string) *Error {
	return New(Configuration, setting+" is not configured on the server.")
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status returns the HTTP status for err.
func Status(err error) int {
	return KindOf(err).Status()
}

// Message returns the user-safe message for err. Unclassified errors get a
// generic message so internal details never leak to the browser.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error."
}
