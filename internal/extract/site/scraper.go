package site

import (
	"context"
	"net/http"
	"time"

	"culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/eventtime"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/quota"
)

// discoveryStrategies runs in priority order per spec.md §4.7 step 3,
// stopping at the first one producing at least one block. Feed
// discovery (RSS/Atom autodiscovery) is tried last, as a Scraper method
// rather than a plain discoverer, since it needs a second fetch.
var discoveryStrategies = []discoverer{discoverJSONLD, discoverMicrodata, discoverHeuristic}

// Scraper is the C7 Generic Site Extractor.
type Scraper struct {
	fetcher   *Fetcher
	challenge *ChallengeClient
}

type Option func(*Scraper)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.fetcher = NewFetcher(c) }
}

func WithChallengeClient(c *ChallengeClient) Option {
	return func(s *Scraper) { s.challenge = c }
}

func New(opts ...Option) *Scraper {
	s := &Scraper{fetcher: NewFetcher(nil), challenge: NewChallengeClient()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeVenue implements scrape_venue(venue, event_type?, time_range,
// quotas) from spec.md §4.7. Per-venue failures are returned as an
// error for the caller (internal/dispatch) to log and swallow; they
// must never propagate as a fatal error to sibling venues.
func (s *Scraper) ScrapeVenue(ctx context.Context, venue models.Venue, eventType models.EventType, tr extract.TimeRange, customFrom, customTo *time.Time, governor *quota.Governor) ([]extract.RawCandidate, error) {
	urls := CandidateURLs(venue, eventType)
	if len(urls) == 0 {
		return nil, errors.NewValidationError("venue.website", "venue has no website to scrape")
	}

	var blocks []Block
	var sourceURL string
	for _, u := range urls {
		found, err := s.fetchAndDiscover(ctx, u)
		if err != nil {
			logger.EventWarn(ctx, "site: fetch failed, trying next candidate url", "venue_id", venue.ID, "url", u, "error", err)
			continue
		}
		if len(found) > 0 {
			blocks = found
			sourceURL = u
			break
		}
	}
	if len(blocks) == 0 {
		return nil, nil
	}

	from, to := Window(tr, time.Now(), customFrom, customTo)

	var candidates []extract.RawCandidate
	for _, b := range blocks {
		raw := blockToCandidate(b, sourceURL, &venue.ID, &venue.CityID)
		if raw.Title == "" {
			continue
		}

		startDate, err := eventtime.ParseDate(raw.StartDateRaw)
		if err != nil {
			logger.EventWarn(ctx, "site: skipping block, unparseable date", "venue_id", venue.ID, "raw", raw.StartDateRaw)
			continue
		}
		var endDate *time.Time
		if raw.EndDateRaw != "" {
			if d, err := eventtime.ParseDate(raw.EndDateRaw); err == nil {
				endDate = &d
			}
		}
		if !InWindow(startDate, endDate, from, to) {
			continue
		}

		resolvedType := models.NormalizeEventType(raw.EventTypeRaw)
		if governor != nil {
			var admitErr error
			if resolvedType == models.EventTypeExhibition {
				website := ""
				if venue.Website != nil {
					website = *venue.Website
				}
				admitErr = governor.AdmitExhibition(venue.ID, website)
			} else {
				admitErr = governor.AdmitEvent(venue.ID)
			}
			if admitErr != nil {
				continue
			}
		}

		candidates = append(candidates, raw)
	}
	return candidates, nil
}

// fetchAndDiscover fetches one candidate URL, falling back to the
// headless-browser challenge client when the plain fetch looks
// bot-blocked, then runs discovery strategies in priority order.
func (s *Scraper) fetchAndDiscover(ctx context.Context, url string) ([]Block, error) {
	body, challenged, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if challenged {
		body, err = s.challenge.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
	}

	page, err := parsePage(body, url)
	if err != nil {
		return nil, errors.NewParseError("site.parse_page", err)
	}

	for _, strategy := range discoveryStrategies {
		if found := strategy(page); len(found) > 0 {
			return found, nil
		}
	}
	if found := s.discoverFeed(ctx, page); len(found) > 0 {
		return found, nil
	}
	return nil, nil
}
