package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/models"
)

func TestToIngestCandidate_ParsesFields(t *testing.T) {
	venueID := uint(7)
	cityID := uint(3)
	raw := extract.RawCandidate{
		Title:         "  Night   Market  ",
		Description:   "Monthly vendor market",
		URL:           "https://example.com/events/night-market?utm_source=ig",
		StartDateRaw:  "4/10/2026",
		StartTimeRaw:  "7:00 pm",
		EventTypeRaw:  "concert",
		StartLocation: "Main Hall",
		VenueID:       &venueID,
		CityID:        &cityID,
		Source:        "website",
	}

	c, err := toIngestCandidate(raw)
	require.NoError(t, err)
	assert.Equal(t, "Night Market", c.Title)
	assert.Equal(t, models.EventTypeMusic, c.EventType)
	assert.Equal(t, 2026, c.StartDate.Year())
	require.NotNil(t, c.StartTime)
	assert.Equal(t, 19, c.StartTime.Hour)
	require.NotNil(t, c.EndTime)
	assert.Equal(t, 23, c.EndTime.Hour, "music events default to a 23:59 end time")
	assert.Equal(t, &venueID, c.VenueID)
}

func TestToIngestCandidate_RejectsUnparseableDate(t *testing.T) {
	_, err := toIngestCandidate(extract.RawCandidate{Title: "Mystery Event", StartDateRaw: "whenever"})
	assert.Error(t, err)
}

func TestToIngestCandidate_PropagatesExtractorError(t *testing.T) {
	_, err := toIngestCandidate(extract.RawCandidate{Err: assert.AnError})
	assert.ErrorIs(t, err, assert.AnError)
}
