// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host         string
	Port         string
	Env          string // "development", "production", "testing"
	SiteURL      string
	WriteTimeout time.Duration

	// Gemini generative backend
	GeminiKey        string
	GeminiBaseURL    string
	GeminiTextModel  string
	GeminiImageModel string
	GeminiVideoModel string

	// Video job polling
	VideoPollInterval time.Duration
	VideoMaxPolls     int

	// Outgoing mail
	MailProvider string // "smtp", "api", "ses" or empty for auto-detect
	MailFrom     string
	MailNotifyTo string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSecure   bool

	MailAPIKey     string
	MailAPIBaseURL string

	SESRegion    string
	SESAccessKey string
	SESSecretKey string

	// Valkey (Redis-compatible), used for shared rate limiting. Empty host disables it.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	RateLimitPerMinute int

	// S3-compatible archive for generated images (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first when present; real environment variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:         envOrDefault("APP_HOST", "0.0.0.0"),
		Port:         envOrDefault("APP_PORT", "8080"),
		Env:          envOrDefault("APP_ENV", "development"),
		SiteURL:      strings.TrimRight(envOrDefault("SITE_URL", "http://localhost:8080"), "/"),
		WriteTimeout: time.Duration(envInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)) * time.Second,

		GeminiKey:        firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		GeminiBaseURL:    envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTextModel:  envOrDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		GeminiImageModel: envOrDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiVideoModel: envOrDefault("GEMINI_VIDEO_MODEL", "veo-3.0-generate-001"),

		VideoPollInterval: time.Duration(envInt("VIDEO_POLL_INTERVAL_SECONDS", 10)) * time.Second,
		VideoMaxPolls:     envInt("VIDEO_MAX_POLLS", 60),

		MailProvider: strings.ToLower(os.Getenv("MAIL_PROVIDER")),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailNotifyTo: os.Getenv("MAIL_NOTIFY_TO"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPSecure:   envBool("SMTP_SECURE", false),

		MailAPIKey:     os.Getenv("MAIL_API_KEY"),
		MailAPIBaseURL: envOrDefault("MAIL_API_BASE_URL", "https://api.resend.com"),

		SESRegion:    envOrDefault("SES_REGION", "me-central-1"),
		SESAccessKey: os.Getenv("SES_ACCESS_KEY"),
		SESSecretKey: os.Getenv("SES_SECRET_KEY"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 20),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "expostudio-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	switch cfg.MailProvider {
	case "", "smtp", "api", "ses":
	default:
		return nil, fmt.Errorf("MAIL_PROVIDER must be one of smtp, api, ses (got %q)", cfg.MailProvider)
	}

	if cfg.VideoPollInterval < time.Second {
		return nil, fmt.Errorf("VIDEO_POLL_INTERVAL_SECONDS must be at least 1")
	}
	if cfg.VideoMaxPolls < 1 {
		return nil, fmt.Errorf("VIDEO_MAX_POLLS must be at least 1")
	}
	if cfg.RateLimitPerMinute < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1")
	}

	if cfg.Env == "production" {
		if !strings.HasPrefix(cfg.SiteURL, "https://") {
			return nil, fmt.Errorf("SITE_URL must be an https URL in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads an integer variable; unparsable values fall back.
func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
