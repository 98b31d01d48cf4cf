package image

import (
	"context"

	"culturefeed-backend/internal/errors"
)

// minOCRChars is the acceptance threshold from spec.md §4.9 step 2: an
// engine's output below this length is treated as a failure and the
// next engine in the chain is tried.
const minOCRChars = 20

// OCREngine is the pluggable image_bytes -> text contract. This package
// ships no concrete implementation; callers pass whatever engines they
// have to NewExtractor.
type OCREngine interface {
	Name() string
	Extract(ctx context.Context, imageBytes []byte) (string, error)
}

// TryEngines runs engines in order, accepting the first result whose
// length reaches minOCRChars. If every engine is exhausted without a
// long-enough result, it returns the longest output seen with a nil
// error. A ParseError is returned only when no engine produced any
// text, so callers can still fall back to an empty-OCR LLM pass.
func TryEngines(ctx context.Context, engines []OCREngine, imageBytes []byte) (string, error) {
	var best string
	for _, engine := range engines {
		text, err := engine.Extract(ctx, imageBytes)
		if err != nil {
			continue
		}
		if len(text) > len(best) {
			best = text
		}
		if len(text) >= minOCRChars {
			return text, nil
		}
	}
	if best != "" {
		return best, nil
	}
	return "", errors.NewParseError("image.ocr", nil)
}
