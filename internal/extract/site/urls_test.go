package site

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"culturefeed-backend/internal/models"
)

func TestCandidateURLs_PrefersEventTypePath(t *testing.T) {
	website := "https://example.org"
	venue := models.Venue{
		Website: &website,
		AdditionalInfo: models.AdditionalInfo{
			EventPaths: map[string]string{"exhibition": "/exhibits"},
		},
	}
	urls := CandidateURLs(venue, models.EventTypeExhibition)
	assert.Equal(t, []string{"https://example.org/exhibits"}, urls)
}

func TestCandidateURLs_FallsBackToHeuristicPaths(t *testing.T) {
	website := "https://example.org/"
	venue := models.Venue{Website: &website}
	urls := CandidateURLs(venue, models.EventTypeTalk)
	assert.Equal(t, []string{
		"https://example.org",
		"https://example.org/events",
		"https://example.org/whatson",
		"https://example.org/calendar",
		"https://example.org/exhibitions",
	}, urls)
}

func TestCandidateURLs_NoWebsiteReturnsNil(t *testing.T) {
	venue := models.Venue{}
	assert.Nil(t, CandidateURLs(venue, models.EventTypeTalk))
}
