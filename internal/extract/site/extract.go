package site

import (
	"regexp"
	"strings"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/models"
)

// dateRangeSep splits a combined "start ... end" string on common range
// separators (spec.md §4.7 step 4's "bag of regexes").
var dateRangeSep = regexp.MustCompile(`(?i)\s*(?:–|—)\s*|\s+(?:-|to|through)\s+`)

var timeRangeSep = regexp.MustCompile(`(?i)\s*(?:-|–|to)\s*`)

// eventTypeHints maps a keyword found in title/description to a raw
// event-type token, resolved through models.NormalizeEventType.
var eventTypeHints = []struct {
	keyword string
	token   string
}{
	{"exhibition", "exhibition"},
	{"on view", "exhibition"},
	{"festival", "festival"},
	{"photo walk", "photowalk"},
	{"photowalk", "photowalk"},
	{"screening", "film"},
	{"film", "film"},
	{"concert", "music"},
	{"performance", "music"},
	{"lecture", "talk"},
	{"talk", "talk"},
	{"panel", "talk"},
	{"workshop", "workshop"},
	{"class", "workshop"},
	{"tour", "tour"},
}

// blockToCandidate fills in a RawCandidate from a discovered Block,
// guessing event_type from keyword hints when the strategy didn't
// supply one directly.
func blockToCandidate(b Block, sourceURL string, venueID, cityID *uint) extract.RawCandidate {
	startRaw, endRaw := splitDateRange(b.DateRangeRaw)
	startTimeRaw, endTimeRaw := splitTimeRange(b.TimeRangeRaw)

	eventTypeRaw := b.EventTypeRaw
	if eventTypeRaw == "" {
		eventTypeRaw = guessEventType(b.Title, b.Description)
	}

	return extract.RawCandidate{
		Title:         strings.TrimSpace(b.Title),
		Description:   strings.TrimSpace(b.Description),
		URL:           b.URL,
		ImageURL:      b.ImageURL,
		StartDateRaw:  startRaw,
		EndDateRaw:    endRaw,
		StartTimeRaw:  startTimeRaw,
		EndTimeRaw:    endTimeRaw,
		StartLocation: strings.TrimSpace(b.LocationRaw),
		EventTypeRaw:  eventTypeRaw,
		VenueID:       venueID,
		CityID:        cityID,
		Source:        "website",
		SourceURL:     sourceURL,
	}
}

func splitDateRange(raw string) (start, end string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	parts := dateRangeSep.Split(raw, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return raw, ""
}

func splitTimeRange(raw string) (start, end string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	parts := timeRangeSep.Split(raw, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return raw, ""
}

func guessEventType(title, description string) string {
	haystack := strings.ToLower(title + " " + description)
	for _, hint := range eventTypeHints {
		if strings.Contains(haystack, hint.keyword) {
			return hint.token
		}
	}
	return string(models.EventTypeGeneric)
}
