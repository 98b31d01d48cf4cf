package aggregator

import "regexp"

// organizerIDPattern extracts the trailing 8-16 digit numeric token
// from a ticketing/aggregator URL (spec.md §4.8 step 1), e.g.
// "https://www.eventbrite.com/o/national-gallery-12345678" -> "12345678".
var organizerIDPattern = regexp.MustCompile(`(\d{8,16})/?$`)

// ExtractOrganizerID returns the aggregator-specific organizer
// identifier embedded in url, if present.
func ExtractOrganizerID(url string) (string, bool) {
	match := organizerIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}
	return match[1], true
}
