// Package eventtime parses the mixed US/ISO date and time formats
// scrapers emit and applies venue-type-specific defaults. Times are
// floating (no offset attached); a City's timezone is only consulted
// at render/export time (see internal/ical).
package eventtime

import (
	"fmt"
	"strings"
	"time"

	"culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/models"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
}

// ParseDate tries each known literal format in turn, grounded on the
// teacher's parseEventDate fallback chain, extended with M/D/YYYY and
// "Month D, YYYY" forms per spec.md §4.3.
func ParseDate(raw string) (time.Time, error) {
	text := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.NewParseError("eventtime.parse_date", fmt.Errorf("unrecognized date format: %q", raw))
}

// ParseTime parses ISO "HH:MM[:SS]" or 12-hour "h:MM am/pm" clock
// strings into a floating time with no attached offset.
func ParseTime(raw string) (models.FloatingTime, error) {
	text := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))

	if strings.HasSuffix(text, "am") || strings.HasSuffix(text, "pm") {
		period := text[len(text)-2:]
		clock := text[:len(text)-2]
		var hour, minute int
		if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
			if _, err := fmt.Sscanf(clock, "%d", &hour); err != nil {
				return models.FloatingTime{}, errors.NewParseError("eventtime.parse_time", fmt.Errorf("unrecognized time: %q", raw))
			}
		}
		if period == "pm" && hour != 12 {
			hour += 12
		} else if period == "am" && hour == 12 {
			hour = 0
		}
		return models.FloatingTime{Hour: hour, Minute: minute}, nil
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if d, err := time.Parse(layout, text); err == nil {
			return models.FloatingTime{Hour: d.Hour(), Minute: d.Minute()}, nil
		}
	}
	return models.FloatingTime{}, errors.NewParseError("eventtime.parse_time", fmt.Errorf("unrecognized time: %q", raw))
}

// Range holds a parsed start/end date-time pair prior to defaulting.
type Range struct {
	StartDate time.Time
	EndDate   *time.Time
	StartTime *models.FloatingTime
	EndTime   *models.FloatingTime
}

// ParseRange parses a "start–end" literal by splitting on the common
// en-dash/hyphen separators and delegating to parseOne (e.g. ParseDate)
// on each side.
func ParseRange(raw string, parseOne func(string) (time.Time, error)) (time.Time, *time.Time, error) {
	for _, sep := range []string{"–", "—", " - ", "-"} {
		if idx := strings.Index(raw, sep); idx > 0 {
			start, err := parseOne(strings.TrimSpace(raw[:idx]))
			if err != nil {
				return time.Time{}, nil, err
			}
			end, err := parseOne(strings.TrimSpace(raw[idx+len(sep):]))
			if err != nil {
				return start, nil, nil
			}
			return start, &end, nil
		}
	}
	start, err := parseOne(strings.TrimSpace(raw))
	return start, nil, err
}

// ApplyDefaults implements the venue-type-specific default in spec.md
// §4.3: a music/performance event with a start time but no end time
// defaults to 23:59; an all-day exhibition/festival with no times at
// all gets nulled-out times.
func ApplyDefaults(eventType models.EventType, startTime, endTime *models.FloatingTime) (*models.FloatingTime, *models.FloatingTime) {
	if startTime != nil && endTime == nil && (eventType == models.EventTypeMusic) {
		endTime = &models.FloatingTime{Hour: 23, Minute: 59}
	}
	if startTime == nil && endTime == nil && (eventType == models.EventTypeExhibition || eventType == models.EventTypeFestival) {
		return nil, nil
	}
	return startTime, endTime
}
