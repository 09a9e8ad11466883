// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// API delivers mail through a hosted email-sending service that accepts
// a JSON POST to /emails with a Bearer key (Resend-compatible).
type API struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAPI creates a hosted-API transport. A nil client gets a 30s default.
func NewAPI(apiKey, baseURL string, client *http.Client) *API {
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (a *API) Name() string { return "api" }

type apiEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type apiResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send posts the message to the provider.
func (a *API) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return sendFailed("api", err)
	}

	payload, err := json.Marshal(apiEmail{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return sendFailed("api", fmt.Errorf("marshal: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return sendFailed("api", fmt.Errorf("request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return sendFailed("api", fmt.Errorf("http: %w", err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var result apiResponse
	_ = json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := result.Message
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return sendFailed("api", fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	slog.Info("email sent", "transport", "api", "id", result.ID, "recipients", len(msg.To))
	return nil
}
