package image

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/models"
)

// Extractor wires downscale -> OCR -> LLM -> heuristics into one
// image_bytes -> RawCandidate pipeline (spec.md §4.9). City/venue
// resolution is a direct lookup against the store; broader
// normalization (C1/C3) runs downstream in internal/dispatch, the
// same post-processing stage every other extractor's output passes
// through.
type Extractor struct {
	db       *gorm.DB
	engines  []OCREngine
	llm      *LLMClient
	registry []WellKnownVenue
}

func NewExtractor(db *gorm.DB, engines []OCREngine, llm *LLMClient, registry []WellKnownVenue) *Extractor {
	return &Extractor{db: db, engines: engines, llm: llm, registry: registry}
}

// Extract runs the full C9 pipeline against a raw uploaded image and
// returns a RawCandidate ready for C1/C3 normalization in
// internal/dispatch, matching spec.md §4.9's "caller decides whether
// to commit via C6" contract (Extract never writes to the store).
func (x *Extractor) Extract(ctx context.Context, rawImage []byte, mediaType string) (extract.RawCandidate, error) {
	downscaled, err := Downscale(rawImage)
	if err != nil {
		return extract.RawCandidate{}, err
	}

	ocrText, err := TryEngines(ctx, x.engines, downscaled)
	if err != nil {
		ocrText = ""
	}

	parsed, err := x.llm.Extract(ctx, ocrText, downscaled, mediaType)
	if err != nil {
		// A non-JSON LLM response is a soft failure (spec.md §8): the
		// caller gets an empty candidate to skip, not a hard error.
		var parseErr *apperrors.ParseError
		if errors.As(err, &parseErr) {
			return extract.RawCandidate{Err: err}, nil
		}
		return extract.RawCandidate{}, err
	}
	parsed = ApplyHeuristics(parsed, ocrText)

	candidate := fieldsToCandidate(parsed)

	if cityName, ok := parsed["city"].(string); ok && cityName != "" && x.db != nil {
		var city models.City
		if err := x.db.Where("LOWER(name) = LOWER(?)", cityName).First(&city).Error; err == nil {
			candidate.CityID = &city.ID
		}
	}

	if vid, ok := MatchWellKnownVenue(x.registry, candidate.Title, candidate.Description, candidate.StartLocation); ok {
		candidate.VenueID = &vid
	} else if x.db != nil && candidate.StartLocation != "" {
		if vid, ok := x.fuzzyMatchVenue(candidate.StartLocation, candidate.CityID); ok {
			candidate.VenueID = &vid
		}
	}

	candidate.Source = "image"
	return candidate, nil
}

// fuzzyMatchVenue mirrors the teacher's ExtractionService.matchVenue
// exact-then-suggestion search: an exact case-insensitive name match
// within the resolved city, falling back to no match (suggestions are
// surfaced to the admin caller, not resolved automatically here).
func (x *Extractor) fuzzyMatchVenue(name string, cityID *uint) (uint, bool) {
	q := x.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if cityID != nil {
		q = q.Where("city_id = ?", *cityID)
	}
	var venue models.Venue
	if err := q.First(&venue).Error; err != nil {
		return 0, false
	}
	return venue.ID, true
}

func fieldsToCandidate(parsed map[string]any) extract.RawCandidate {
	get := func(key string) string {
		if v, ok := parsed[key].(string); ok {
			return v
		}
		return ""
	}
	getBool := func(key string) bool {
		v, _ := parsed[key].(bool)
		return v
	}

	return extract.RawCandidate{
		Title:                  get("title"),
		Description:            get("description"),
		StartDateRaw:           get("start_date"),
		EndDateRaw:             get("end_date"),
		StartTimeRaw:           get("start_time"),
		EndTimeRaw:             get("end_time"),
		StartLocation:          get("start_location"),
		EndLocation:            get("end_location"),
		EventTypeRaw:           get("event_type"),
		IsOnline:               getBool("is_online"),
		IsRegistrationRequired: getBool("is_registration_required"),
		RegistrationURL:        get("registration_url"),
	}
}
