package ical

import (
	"testing"
	"time"

	"culturefeed-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_AllDayExhibitionEndDateExclusive(t *testing.T) {
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	event := models.Event{ID: 1, Title: "Finding Awe", EventType: models.EventTypeExhibition, StartDate: start, EndDate: &end}

	exporter := NewExporter("America/New_York")
	cal := exporter.Export([]models.Event{event})

	serialized := cal.Serialize()
	assert.Contains(t, serialized, "DTSTART;VALUE=DATE:20260410")
	assert.Contains(t, serialized, "DTEND;VALUE=DATE:20260416")
}

func TestParseAllDayRange_RoundTrips(t *testing.T) {
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	exclusiveEnd := time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC)
	gotStart, gotEnd := ParseAllDayRange(start, exclusiveEnd)
	require.Equal(t, start, gotStart)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), gotEnd)
}
