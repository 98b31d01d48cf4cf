// Package image turns a user-uploaded flyer image into an event
// candidate (C9): downscale, OCR, LLM extraction, then heuristic
// post-processing, grounded on the teacher's ExtractionService.
package image

import (
	"bytes"
	goimage "image"
	"image/jpeg"
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"culturefeed-backend/internal/errors"
)

const (
	maxWidth    = 1200
	jpegQuality = 60
)

// Downscale resizes img to at most maxWidth pixels wide (preserving
// aspect ratio) and re-encodes it as JPEG at jpegQuality, per spec.md
// §4.9 step 1. Images already narrower than maxWidth are only
// re-encoded, never upscaled.
func Downscale(raw []byte) ([]byte, error) {
	src, _, err := goimage.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewParseError("image.decode", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		height = height * maxWidth / width
		width = maxWidth
	}

	dst := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, errors.NewParseError("image.encode", err)
	}
	return buf.Bytes(), nil
}
