// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
)

// VideoBrief asks for a short hero video, either from a free-form prompt or
// from a theme resolved through the hero video library.
type VideoBrief struct {
	Prompt string `json:"prompt"`
	Theme  string `json:"theme"`
}

// VideoState is a video job's position in its lifecycle.
type VideoState string

const (
	VideoSubmitted VideoState = "submitted"
	VideoPolling   VideoState = "polling"
	VideoDone      VideoState = "done"
	VideoFailed    VideoState = "failed"
)

// VideoStream is a finished video ready to be copied to the client.
// The caller must Close it.
type VideoStream struct {
	io.ReadCloser
	ContentType string
}

const videoFailedMsg = "Video generation failed."

// Video submits a job, polls it at a fixed interval until it finishes, and
// opens the resulting file. Polling stops after the configured number of
// checks or as soon as ctx is cancelled.
func (s *Service) Video(ctx context.Context, brief VideoBrief) (*VideoStream, error) {
	prompt, err := s.videoPrompt(brief)
	if err != nil {
		return nil, err
	}
	if err := s.requireBackend(); err != nil {
		return nil, err
	}

	op, err := s.backend.StartVideo(ctx, ai.VideoRequest{Prompt: prompt})
	if err != nil {
		return nil, apperr.Wrap(apperr.Generation, videoFailedMsg, err)
	}
	log := slog.With("operation", op.Name)
	log.Info("video job", "state", VideoSubmitted)

	started := time.Now()
	for polls := 0; !op.Done; polls++ {
		if polls >= s.maxPolls {
			log.Warn("video job", "state", VideoFailed, "reason", "poll limit", "polls", polls)
			return nil, apperr.New(apperr.Generation, "Video generation timed out.")
		}
		if err := sleep(ctx, s.pollInterval); err != nil {
			log.Info("video job abandoned", "error", err, "polls", polls)
			return nil, apperr.Wrap(apperr.Generation, "Video generation was cancelled.", err)
		}
		log.Debug("video job", "state", VideoPolling, "poll", polls+1)
		op, err = s.backend.VideoStatus(ctx, op.Name)
		if err != nil {
			log.Warn("video job", "state", VideoFailed, "error", err)
			return nil, apperr.Wrap(apperr.Generation, videoFailedMsg, err)
		}
	}

	if op.Error != "" || op.VideoURI == "" {
		cause := op.Error
		if cause == "" {
			cause = "finished without a video"
		}
		log.Warn("video job", "state", VideoFailed, "error", cause)
		return nil, apperr.Wrap(apperr.Generation, videoFailedMsg, errors.New(cause))
	}
	log.Info("video job", "state", VideoDone, "elapsed", time.Since(started).Round(time.Second).String())

	body, err := s.backend.DownloadVideo(ctx, op.VideoURI)
	if err != nil {
		return nil, apperr.Wrap(apperr.Generation, videoFailedMsg, err)
	}
	return &VideoStream{ReadCloser: body, ContentType: "video/mp4"}, nil
}

func (s *Service) videoPrompt(brief VideoBrief) (string, error) {
	if p := strings.TrimSpace(brief.Prompt); p != "" {
		if err := checkLengths("prompt", p); err != nil {
			return "", err
		}
		return p, nil
	}
	if blank(brief.Theme) {
		return "", missingField("prompt or theme")
	}
	if s.catalogue == nil {
		return "", apperr.New(apperr.Configuration, "Site catalogue is not loaded.")
	}
	v, ok := s.catalogue.HeroVideo(brief.Theme)
	if !ok {
		return "", apperr.New(apperr.Validation, "Unknown video theme.")
	}
	return v.Prompt, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
