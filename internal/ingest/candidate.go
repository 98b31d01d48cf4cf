// Package ingest applies candidate -> stored transitions (insert,
// field-level merge) in transactional batches, grounded on the
// teacher's createShowFromEvent (db.Transaction wrapping multi-table
// writes) and ImportFromJSON's per-item result tallying.
package ingest

import (
	"time"

	"culturefeed-backend/internal/models"
)

// Candidate is a tentative event emitted by an extractor, not yet
// persisted. Language is checked for "English" before any other
// processing (spec.md §4.6 step 1); extractors that can't determine
// language should leave it empty, which is treated as English.
type Candidate struct {
	Title       string
	Description string
	EventType   models.EventType

	StartDate time.Time
	EndDate   *time.Time
	StartTime *models.FloatingTime
	EndTime   *models.FloatingTime

	URL      string
	ImageURL string

	StartLocation string
	EndLocation   string

	IsRegistrationRequired bool
	RegistrationURL        string
	IsOnline                bool
	IsPermanent             bool

	SourceURL string
	Language  string

	VenueID *uint
	CityID  *uint

	TypeExtension models.EventTypeExtension
}
