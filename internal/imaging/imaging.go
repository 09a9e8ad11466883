// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging produces JPEG thumbnails of generated renders for the
// media archive. Decoding supports PNG, JPEG, GIF and WebP; images narrower
// than the target width are re-encoded without upscaling.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbnailWidth is the default thumbnail width in pixels.
const ThumbnailWidth = 480

// thumbnailQuality is the JPEG quality used for thumbnails (1-100).
const thumbnailQuality = 80

// Thumbnail decodes data and returns a JPEG scaled to width, keeping the
// aspect ratio.
func Thumbnail(data []byte, width int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging decode: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}

	dstW, dstH := b.Dx(), b.Dy()
	if width > 0 && dstW > width {
		dstH = max(1, dstH*width/dstW)
		dstW = width
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("imaging encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for an image MIME type.
func Extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
