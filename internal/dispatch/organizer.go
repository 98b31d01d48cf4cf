package dispatch

import (
	"culturefeed-backend/internal/extract/aggregator"
	"culturefeed-backend/internal/models"
)

// organizerIDFromVenue checks a venue's ticketing URL, then its
// website, for an aggregator organizer id (spec.md §4.8 step 1).
func organizerIDFromVenue(venue models.Venue) (string, bool) {
	if venue.TicketingURL != nil {
		if id, ok := aggregator.ExtractOrganizerID(*venue.TicketingURL); ok {
			return id, true
		}
	}
	if venue.Website != nil {
		if id, ok := aggregator.ExtractOrganizerID(*venue.Website); ok {
			return id, true
		}
	}
	return "", false
}

func organizerIDFromURL(url string) (string, bool) {
	return aggregator.ExtractOrganizerID(url)
}
