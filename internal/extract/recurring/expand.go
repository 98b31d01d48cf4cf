// Package recurring materializes a venue's recurring weekly program
// into one candidate per matching date (C13), reusing internal/extract/site's
// fetch path rather than duplicating HTTP/anti-bot handling.
package recurring

import (
	"context"
	"regexp"
	"strings"
	"time"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/models"
)

// weekdayPattern extracts a "Monday ... 3 pm" style hint from page
// text (spec.md §4.13 step 2).
var weekdayPattern = regexp.MustCompile(`(?i)(monday|tuesday|wednesday|thursday|friday|saturday|sunday)[^.\n]{0,40}?(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ScheduleHint is a single weekday+time pair found on the page.
type ScheduleHint struct {
	Weekday time.Weekday
	TimeRaw string
}

// ExtractScheduleHints runs the weekday/time regex over page text.
func ExtractScheduleHints(pageText string) []ScheduleHint {
	var hints []ScheduleHint
	for _, m := range weekdayPattern.FindAllStringSubmatch(pageText, -1) {
		weekday, ok := weekdayNames[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		hints = append(hints, ScheduleHint{Weekday: weekday, TimeRaw: m[2]})
	}
	return hints
}

// Expander implements scrape for a recurring program: fetch once,
// extract a schedule hint, then emit one candidate per date in the
// window whose weekday matches.
type Expander struct {
	fetcher *site.Fetcher
}

func NewExpander(fetcher *site.Fetcher) *Expander {
	return &Expander{fetcher: fetcher}
}

// Expand implements spec.md §4.13. When no schedule hint is found, it
// falls back to one candidate per weekday across the whole window
// (step 4's "caller opted in" escape hatch).
func (x *Expander) Expand(ctx context.Context, venue models.Venue, city models.City, baseURL string, start, end time.Time, title string) ([]extract.RawCandidate, error) {
	body, _, err := x.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	hints := ExtractScheduleHints(string(body))

	var candidates []extract.RawCandidate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if hints != nil {
			for _, h := range hints {
				if d.Weekday() == h.Weekday {
					candidates = append(candidates, toCandidate(venue, city, baseURL, d, h.TimeRaw, title))
				}
			}
		} else {
			candidates = append(candidates, toCandidate(venue, city, baseURL, d, "", title))
		}
	}
	return candidates, nil
}

func toCandidate(venue models.Venue, city models.City, baseURL string, date time.Time, timeRaw, title string) extract.RawCandidate {
	return extract.RawCandidate{
		Title:        title,
		StartDateRaw: date.Format("2006-01-02"),
		StartTimeRaw: timeRaw,
		VenueID:      &venue.ID,
		CityID:       &city.ID,
		Source:       "website",
		SourceURL:    baseURL,
	}
}
