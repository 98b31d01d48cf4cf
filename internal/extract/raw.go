// Package extract holds the shared candidate shape produced by every
// extractor (C7 site, C8 aggregator, C9 image, C13 recurring) before
// normalization and dedup/merge. Extractors return raw, unnormalized
// strings; internal/dispatch runs them through internal/normalize and
// internal/eventtime before handing candidates to internal/ingest.
package extract

// TimeRange is the filter window named in spec.md §4.7 step 5.
type TimeRange string

const (
	TimeRangeToday     TimeRange = "today"
	TimeRangeTomorrow  TimeRange = "tomorrow"
	TimeRangeThisWeek  TimeRange = "this_week"
	TimeRangeNextWeek  TimeRange = "next_week"
	TimeRangeThisMonth TimeRange = "this_month"
	TimeRangeNextMonth TimeRange = "next_month"
	TimeRangeCustom    TimeRange = "custom"
	TimeRangeAll       TimeRange = "all"
)

// RawCandidate is a tentative event straight off an extractor, with
// dates/times still as scraped strings. VenueID/CityID/Source* are
// stamped by the extractor that produced it.
type RawCandidate struct {
	Title       string
	Description string
	URL         string
	ImageURL    string

	StartDateRaw string
	EndDateRaw   string
	StartTimeRaw string
	EndTimeRaw   string

	StartLocation string
	EndLocation   string

	EventTypeRaw string

	IsRegistrationRequired bool
	RegistrationURL        string
	IsOnline               bool

	VenueID   *uint
	CityID    *uint
	Source    string // "website", "aggregator", "image", "recurring"
	SourceURL string

	// Err is set when a single block/item failed to parse cleanly; the
	// caller skips it rather than aborting the whole batch (spec.md §9's
	// result-style-at-candidate-granularity rule).
	Err error
}
