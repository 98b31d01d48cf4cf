// Package ical renders EventView records as iCal (RFC 5545) calendars,
// grounded on github.com/arran4/golang-ical — already a direct
// dependency of the teacher repo, previously wired nowhere in the
// backend. One ics.Calendar is built per request.
package ical

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"culturefeed-backend/internal/models"
)

// hardcodedVenueAddresses is the last-resort location fallback named
// in spec.md §6.4.
var hardcodedVenueAddresses = map[string]string{
	"nga":       "National Gallery of Art, Constitution Ave NW, Washington, DC 20565",
	"hirshhorn": "Hirshhorn Museum, Independence Ave SW, Washington, DC 20560",
	"webster's": "Webster's Hall, 125 E 11th St, New York, NY 10003",
}

var recurringMarker = regexp.MustCompile(`\[RECURRING:\s*([^\]]+)\]`)

// Exporter builds ics.Calendar values for a batch of events belonging
// to a single city (and therefore a single timezone).
type Exporter struct {
	CityTimezone string
}

func NewExporter(cityTimezone string) *Exporter {
	if cityTimezone == "" {
		cityTimezone = "UTC"
	}
	return &Exporter{CityTimezone: cityTimezone}
}

// Export renders events into a single ics.Calendar.
func (x *Exporter) Export(events []models.Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, e := range events {
		x.addEvent(cal, e)
	}
	return cal
}

func (x *Exporter) addEvent(cal *ics.Calendar, e models.Event) {
	vEvent := cal.AddEvent(fmt.Sprintf("event-%d@culturefeed", e.ID))
	vEvent.SetCreatedTime(e.CreatedAt)
	vEvent.SetDtStampTime(e.CreatedAt)
	vEvent.SetModifiedAt(e.UpdatedAt)
	vEvent.SetSummary(e.Title)
	if e.Description != "" {
		vEvent.SetDescription(e.Description)
	}
	if e.URL != "" {
		vEvent.SetURL(e.URL)
	}
	vEvent.SetLocation(x.location(e))

	allDay := e.StartTime == nil && e.EndTime == nil &&
		(e.EventType == models.EventTypeExhibition || e.EventType == models.EventTypeFestival)

	switch {
	case allDay:
		vEvent.SetAllDayStartAt(e.StartDate)
		end := e.StartDate
		if e.EndDate != nil {
			end = *e.EndDate
		}
		// end-date exclusive: add one day (spec.md §6.4)
		vEvent.SetAllDayEndAt(end.AddDate(0, 0, 1))
	default:
		start := e.StartDate
		if e.StartTime != nil {
			start = time.Date(start.Year(), start.Month(), start.Day(), e.StartTime.Hour, e.StartTime.Minute, 0, 0, time.UTC)
		}
		vEvent.SetProperty(ics.ComponentPropertyDtStart,
			start.Format("20060102T150405"), ics.WithTZID(x.CityTimezone))

		end := start
		if e.EndDate != nil {
			end = *e.EndDate
		}
		if e.EndTime != nil {
			end = time.Date(end.Year(), end.Month(), end.Day(), e.EndTime.Hour, e.EndTime.Minute, 0, 0, time.UTC)
		}
		vEvent.SetProperty(ics.ComponentPropertyDtEnd,
			end.Format("20060102T150405"), ics.WithTZID(x.CityTimezone))
	}

	if match := recurringMarker.FindStringSubmatch(e.Description); match != nil {
		vEvent.AddRrule(strings.TrimSpace(match[1]))
	}
}

// location implements the §6.4 priority: venue address -> venue name
// (+ city) -> start_location -> empty, with the hardcoded fallbacks
// for venues known to lack a structured address.
func (x *Exporter) location(e models.Event) string {
	if e.Venue != nil {
		if e.Venue.Address != nil && *e.Venue.Address != "" {
			return *e.Venue.Address
		}
		if addr, ok := hardcodedVenueAddresses[strings.ToLower(e.Venue.Name)]; ok {
			return addr
		}
		if e.Venue.Name != "" {
			if e.City != nil {
				return fmt.Sprintf("%s, %s", e.Venue.Name, e.City.Name)
			}
			return e.Venue.Name
		}
	}
	if e.StartLocation != "" {
		return e.StartLocation
	}
	return ""
}

// ParseAllDayRange inverts the end-exclusive adjustment made on
// export, recovering the original [start_date, end_date] pair (spec.md
// §8's round-trip law).
func ParseAllDayRange(dtStart, dtEndExclusive time.Time) (start, end time.Time) {
	return dtStart, dtEndExclusive.AddDate(0, 0, -1)
}
