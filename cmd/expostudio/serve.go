// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"expostudio/internal/ai"
	"expostudio/internal/cache"
	"expostudio/internal/config"
	"expostudio/internal/handlers"
	"expostudio/internal/mailer"
	"expostudio/internal/middleware"
	"expostudio/internal/notify"
	"expostudio/internal/router"
	"expostudio/internal/site"
	"expostudio/internal/storage"
	"expostudio/internal/studio"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	setupLogger(cfg)
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	catalogue, err := site.Load()
	if err != nil {
		return fmt.Errorf("load site catalogue: %w", err)
	}

	// Generative backend (optional: endpoints report it as unconfigured).
	var backend ai.Backend
	if cfg.GeminiKey != "" {
		backend = ai.NewGemini(ai.Options{
			APIKey:     cfg.GeminiKey,
			BaseURL:    cfg.GeminiBaseURL,
			TextModel:  cfg.GeminiTextModel,
			ImageModel: cfg.GeminiImageModel,
			VideoModel: cfg.GeminiVideoModel,
		})
		slog.Info("gemini backend ready", "text_model", cfg.GeminiTextModel, "image_model", cfg.GeminiImageModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set, generative endpoints disabled")
	}

	// Media archive (optional).
	opts := studio.Options{
		Catalogue:         catalogue,
		VideoPollInterval: cfg.VideoPollInterval,
		VideoMaxPolls:     cfg.VideoMaxPolls,
	}
	archive, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return fmt.Errorf("init s3 storage: %w", err)
	}
	if archive != nil {
		opts.Archive = archive
		slog.Info("s3 media archive connected", "endpoint", cfg.S3Endpoint, "bucket", archive.Bucket())
	} else {
		slog.Warn("s3 storage not configured, generated images are not archived")
	}

	m, err := mailer.New(mailer.Settings{
		Provider:     cfg.MailProvider,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUser:     cfg.SMTPUser,
		SMTPPassword: cfg.SMTPPassword,
		SMTPSecure:   cfg.SMTPSecure,
		APIKey:       cfg.MailAPIKey,
		APIBaseURL:   cfg.MailAPIBaseURL,
		SESRegion:    cfg.SESRegion,
		SESAccessKey: cfg.SESAccessKey,
		SESSecretKey: cfg.SESSecretKey,
	})
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	if m != nil {
		slog.Info("mail transport ready", "transport", m.Name())
	}

	// Rate limiting: shared counters in Valkey when configured, otherwise
	// per-process buckets.
	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMinute)
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connect valkey: %w", err)
		}
		defer valkeyClient.Close()
		limiter = cache.NewWindowCounter(valkeyClient, cfg.RateLimitPerMinute, time.Minute)
	}

	// Long enough for the full polling budget plus the download.
	videoTimeout := cfg.VideoPollInterval*time.Duration(cfg.VideoMaxPolls) + 2*time.Minute

	api := handlers.New(handlers.Options{
		Studio:       studio.New(backend, opts),
		Notifier:     notify.New(m, cfg.MailFrom, cfg.MailNotifyTo),
		Catalogue:    catalogue,
		SiteURL:      cfg.SiteURL,
		VideoTimeout: videoTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(api, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}
