package site

import (
	"time"

	"culturefeed-backend/internal/extract"
)

// Window resolves a named TimeRange (or explicit custom bounds) to a
// concrete [from, to] pair, anchored at today.
func Window(tr extract.TimeRange, today time.Time, customFrom, customTo *time.Time) (from, to time.Time) {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	switch tr {
	case extract.TimeRangeToday:
		return today, today
	case extract.TimeRangeTomorrow:
		t := today.AddDate(0, 0, 1)
		return t, t
	case extract.TimeRangeThisWeek:
		return today, today.AddDate(0, 0, 7)
	case extract.TimeRangeNextWeek:
		start := today.AddDate(0, 0, 7)
		return start, start.AddDate(0, 0, 7)
	case extract.TimeRangeThisMonth:
		return today, today.AddDate(0, 1, 0)
	case extract.TimeRangeNextMonth:
		start := today.AddDate(0, 1, 0)
		return start, start.AddDate(0, 1, 0)
	case extract.TimeRangeCustom:
		if customFrom != nil && customTo != nil {
			return *customFrom, *customTo
		}
		return today, today
	default: // TimeRangeAll
		return time.Time{}, time.Time{}
	}
}

// InWindow implements spec.md §4.7 step 5: an event matches if its
// start_date falls in the window, or (for events with an end_date) its
// [start_date, end_date] span overlaps the window.
func InWindow(startDate time.Time, endDate *time.Time, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	eventEnd := startDate
	if endDate != nil {
		eventEnd = *endDate
	}
	return !eventEnd.Before(from) && !startDate.After(to)
}
