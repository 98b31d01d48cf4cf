// Package aggregator extracts events from external ticketing
// aggregators (C8), grounded on the teacher's MusicDiscoveryService
// HTTP-call idiom: an *http.Client with an explicit timeout, a
// bearer/secret header, and a typed JSON response decode.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/logger"
)

const (
	fetchTimeout = 10 * time.Second
	maxPages     = 5
)

// AuthTokenEnvVar names the process environment variable C8 reads its
// bearer token from. When unset, Client.FetchEvents returns an empty
// stream and logs a warning rather than failing (spec.md §4.8).
const AuthTokenEnvVar = "AGGREGATOR_API_TOKEN"

type eventsByOrganizerResponse struct {
	Events     []aggregatorEvent `json:"events"`
	NextCursor *string           `json:"next_cursor"`
}

type aggregatorEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	IsOnline    bool   `json:"is_online"`
}

// Client fetches events "by organizer" from a configured aggregator
// REST endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		baseURL:    baseURL,
		authToken:  os.Getenv(AuthTokenEnvVar),
	}
}

// FetchEvents implements spec.md §4.8 steps 2-4: cursor-paginate the
// organizer's events endpoint until exhausted or maxPages fetched,
// mapping each page into aggregator-sourced RawCandidates.
func (c *Client) FetchEvents(ctx context.Context, organizerID string, venueID, cityID *uint) ([]extract.RawCandidate, error) {
	if c.authToken == "" {
		logger.EventWarn(ctx, "aggregator: no auth token configured, skipping", "organizer_id", organizerID)
		return nil, nil
	}

	var candidates []extract.RawCandidate
	cursor := ""
	for page := 0; page < maxPages; page++ {
		resp, err := c.fetchPage(ctx, organizerID, cursor)
		if err != nil {
			return candidates, err
		}
		for _, e := range resp.Events {
			candidates = append(candidates, toCandidate(e, organizerID, venueID, cityID))
		}
		if resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
	}
	return candidates, nil
}

func (c *Client) fetchPage(ctx context.Context, organizerID, cursor string) (*eventsByOrganizerResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/organizers/%s/events", c.baseURL, organizerID)
	if cursor != "" {
		url += "?cursor=" + cursor
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewTransientIO("aggregator.build_request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransientIO("aggregator.fetch_page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.NewTransientIO("aggregator.fetch_page", fmt.Errorf("status %d", resp.StatusCode))
	}

	var parsed eventsByOrganizerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.NewParseError("aggregator.decode_response", err)
	}
	return &parsed, nil
}

func toCandidate(e aggregatorEvent, organizerID string, venueID, cityID *uint) extract.RawCandidate {
	return extract.RawCandidate{
		Title:                  e.Title,
		Description:            e.Description,
		URL:                    e.URL,
		ImageURL:               e.ImageURL,
		StartDateRaw:           e.StartDate,
		EndDateRaw:             e.EndDate,
		StartTimeRaw:           e.StartTime,
		EndTimeRaw:             e.EndTime,
		StartLocation:          e.Location,
		IsOnline:               e.IsOnline,
		IsRegistrationRequired: true,
		RegistrationURL:        e.URL,
		VenueID:                venueID,
		CityID:                 cityID,
		Source:                 "aggregator",
		SourceURL:              organizerID,
	}
}
