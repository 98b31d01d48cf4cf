package dispatch

import (
	"time"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/models"
)

// Request is dispatch(request) from spec.md §4.10.
type Request struct {
	CityID    uint
	EventType *models.EventType
	TimeRange extract.TimeRange

	VenueIDs  []uint
	SourceIDs []uint

	CustomFrom *time.Time
	CustomTo   *time.Time

	MaxExhibitionsPerVenue int
	MaxEventsPerVenue      int
}

// Valid reports whether at least one venue or source was selected
// (spec.md §4.10 step 1) and, when TimeRange is custom, that both
// bounds were supplied (spec.md §8 boundary behavior: custom without
// both dates is a rejection, not a silent narrow-to-today).
func (r Request) Valid() bool {
	if len(r.VenueIDs) == 0 && len(r.SourceIDs) == 0 {
		return false
	}
	if r.TimeRange == extract.TimeRangeCustom && (r.CustomFrom == nil || r.CustomTo == nil) {
		return false
	}
	return true
}
