// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
	"expostudio/internal/imaging"
	"expostudio/internal/normalize"
	"expostudio/internal/slug"
)

// DesignResult is the combined output of the text and image steps.
type DesignResult struct {
	DesignConcept DesignConcept `json:"designConcept"`
	Image         string        `json:"image"` // base64, no data: prefix
	MimeType      string        `json:"mimeType"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	ThumbnailURL  string        `json:"thumbnailUrl,omitempty"`
}

// Design runs the concept-then-render flow for a brief. Steps are strictly
// sequential and the first failure ends the request.
func (s *Service) Design(ctx context.Context, brief Brief) (*DesignResult, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireBackend(); err != nil {
		return nil, err
	}

	text, err := s.backend.GenerateJSON(ctx, ai.JSONRequest{
		System: designerSystemPrompt,
		Prompt: brief.ConceptPrompt(),
		Schema: conceptSchema,
	})
	if err != nil {
		return nil, upstream(err)
	}

	var concept DesignConcept
	if err := normalize.DecodeJSON(text, conceptSchema, &concept); err != nil {
		return nil, err
	}
	concept.ColorPalette = normalize.HexColors(concept.ColorPalette)

	img, err := s.backend.GenerateImage(ctx, brief.ImagePrompt(concept))
	if err != nil {
		if errors.Is(err, ai.ErrNoImage) {
			return nil, apperr.Wrap(apperr.Generation, "Image generation returned no image.", err)
		}
		return nil, upstream(err)
	}

	result := &DesignResult{
		DesignConcept: concept,
		Image:         base64.StdEncoding.EncodeToString(img.Data),
		MimeType:      img.MimeType,
	}

	if s.archive != nil {
		result.ImageURL, result.ThumbnailURL = s.archiveImage(ctx, brief.Kind(), concept.Name, img)
	}

	slog.Info("design generated", "kind", brief.Kind(), "concept", concept.Name, "bytes", len(img.Data))
	return result, nil
}

// archiveImage uploads the render and a thumbnail. Failures are logged and
// yield empty URLs; archiving never fails the request.
func (s *Service) archiveImage(ctx context.Context, kind, name string, img *ai.Image) (imageURL, thumbURL string) {
	base := fmt.Sprintf("designs/%s/%s/%s-%s",
		kind, time.Now().UTC().Format("2006/01"), slug.Truncate(slug.Generate(name), 60), uuid.NewString()[:8])

	var err error
	imageURL, err = s.archive.Put(ctx, base+imaging.Extension(img.MimeType), img.MimeType, img.Data)
	if err != nil {
		slog.Warn("archive design image failed", "error", err)
		return "", ""
	}

	thumb, err := imaging.Thumbnail(img.Data, imaging.ThumbnailWidth)
	if err != nil {
		slog.Warn("design thumbnail failed", "error", err)
		return imageURL, ""
	}
	thumbURL, err = s.archive.Put(ctx, base+"-thumb.jpg", "image/jpeg", thumb)
	if err != nil {
		slog.Warn("archive design thumbnail failed", "error", err)
		return imageURL, ""
	}
	return imageURL, thumbURL
}
