// Package dispatch is the C10 Scraper Dispatcher: it fans a scrape
// request out across the C7 (site) and C8 (aggregator) extractors
// (C13 recurring expansion is not run from here), feeds the results
// through C6, and reports progress on a
// channel (C11). Lifecycle is grounded on the teacher's CleanupService
// (goroutine + channel + context cancellation); bounded fan-out uses
// golang.org/x/sync/errgroup rather than a hand-rolled semaphore.
package dispatch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/extract/aggregator"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/ingest"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/quota"
)

const (
	// PoolSize is the default bounded concurrency across venues/sources
	// (spec.md §5).
	PoolSize = 4
	// PerVenueTimeout is the wall-clock budget for a single venue's
	// extraction, after which the dispatcher aborts that task only.
	PerVenueTimeout = 120 * time.Second
	// DisconnectGrace is the bound on how long outstanding tasks may take
	// to notice a cancelled context. The dispatcher does not wait on or
	// enforce it: tasks stop through ctx cancellation alone.
	DisconnectGrace = 2 * time.Second
)

// Dispatcher is the C10 entry point. One Dispatcher may serve many
// Dispatch calls concurrently; it holds no request-scoped state.
type Dispatcher struct {
	db         *gorm.DB
	scraper    *site.Scraper
	aggregator *aggregator.Client
	engine     *ingest.Engine
}

func NewDispatcher(db *gorm.DB, scraper *site.Scraper, aggregatorClient *aggregator.Client, engine *ingest.Engine) *Dispatcher {
	return &Dispatcher{db: db, scraper: scraper, aggregator: aggregatorClient, engine: engine}
}

// Dispatch runs spec.md §4.10 and returns a channel the caller must
// drain to completion (or cancel ctx to abandon it). The channel is
// closed when the run finishes.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) <-chan ProgressEvent {
	out := make(chan ProgressEvent, 32)
	go d.run(ctx, req, out)
	return out
}

func send(ctx context.Context, out chan<- ProgressEvent, ev ProgressEvent) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) run(ctx context.Context, req Request, out chan<- ProgressEvent) {
	defer close(out)

	if !req.Valid() {
		send(ctx, out, errorEvent(InvalidRequestMessage(req)))
		return
	}

	send(ctx, out, progressEvent(10, "starting", "", ""))

	governor := quota.NewGovernor(req.MaxExhibitionsPerVenue, req.MaxEventsPerVenue)
	eventType := models.EventTypeGeneric
	if req.EventType != nil {
		eventType = *req.EventType
	}

	venues, err := d.loadVenues(req.VenueIDs)
	if err != nil {
		send(ctx, out, errorEvent("loading venues: "+err.Error()))
	}
	sources, err := d.loadSources(req.SourceIDs)
	if err != nil {
		send(ctx, out, errorEvent("loading sources: "+err.Error()))
	}

	for _, v := range venues {
		if v.Website != nil {
			governor.RegisterVenueWebsite(v.ID, *v.Website)
		}
	}

	var totalEvents int64

	g := new(errgroup.Group)
	g.SetLimit(PoolSize)

	for _, v := range venues {
		venue := v
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					send(ctx, out, errorEvent(fmt.Sprintf("venue %s: panic: %v", venue.Name, r)))
				}
			}()
			d.runVenue(ctx, venue, eventType, req, governor, out, &totalEvents)
			return nil
		})
	}
	for _, s := range sources {
		source := s
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					send(ctx, out, errorEvent(fmt.Sprintf("source %s: panic: %v", source.Name, r)))
				}
			}()
			d.runSource(ctx, source, req, governor, out, &totalEvents)
			return nil
		})
	}
	// Every goroutine above swallows its own errors and always returns
	// nil: one venue/source failing must never cancel its siblings
	// (spec.md §4.10 failure isolation).
	_ = g.Wait()

	send(ctx, out, completeEvent(int(atomic.LoadInt64(&totalEvents)), "scrape complete"))
}

// InvalidRequestMessage distinguishes the two ways Request.Valid can
// fail so the caller gets an actionable 400, not a generic one.
func InvalidRequestMessage(req Request) string {
	if req.TimeRange == extract.TimeRangeCustom && (req.CustomFrom == nil || req.CustomTo == nil) {
		return "time_range=custom requires both custom_from and custom_to"
	}
	return "at least one of venue_ids or source_ids must be provided"
}

func (d *Dispatcher) loadVenues(ids []uint) ([]models.Venue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var venues []models.Venue
	err := d.db.Where("id IN ?", ids).Find(&venues).Error
	return venues, err
}

func (d *Dispatcher) loadSources(ids []uint) ([]models.Source, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var sources []models.Source
	err := d.db.Where("id IN ?", ids).Find(&sources).Error
	return sources, err
}

// runVenue runs C7 (and C8 when the venue's ticketing/website URL
// resolves to an aggregator organizer id) for a single venue, then
// flushes whatever it collected through C6.
func (d *Dispatcher) runVenue(ctx context.Context, venue models.Venue, eventType models.EventType, req Request, governor *quota.Governor, out chan<- ProgressEvent, total *int64) {
	venueCtx, cancel := context.WithTimeout(ctx, PerVenueTimeout)
	defer cancel()

	var raw []extract.RawCandidate

	siteCandidates, err := d.scraper.ScrapeVenue(venueCtx, venue, eventType, req.TimeRange, req.CustomFrom, req.CustomTo, governor)
	if err != nil {
		logger.EventWarn(ctx, "dispatch: site extraction failed", "venue_id", venue.ID, "error", err)
		send(ctx, out, errorEvent(fmt.Sprintf("venue %s: %v", venue.Name, err)))
	} else {
		raw = append(raw, siteCandidates...)
	}

	if d.aggregator != nil {
		if organizerID, ok := organizerIDFromVenue(venue); ok {
			venueID, cityID := venue.ID, venue.CityID
			aggCandidates, err := d.aggregator.FetchEvents(venueCtx, organizerID, &venueID, &cityID)
			if err != nil {
				logger.EventWarn(ctx, "dispatch: aggregator extraction failed", "venue_id", venue.ID, "error", err)
				send(ctx, out, errorEvent(fmt.Sprintf("venue %s (aggregator): %v", venue.Name, err)))
			} else {
				raw = append(raw, aggCandidates...)
			}
		}
	}

	send(ctx, out, progressEvent(50, "scraped", venue.Name, ""))
	d.ingestAndReport(ctx, raw, venue.Name, "", governor, out, total)
}

// runSource runs the extractor appropriate to the source's type.
// Aggregator sources map directly onto C8; website sources reuse C7
// against a synthetic, venue-less page fetch. Social sources have no
// grounded extractor in this pack and are skipped with a warning.
func (d *Dispatcher) runSource(ctx context.Context, source models.Source, req Request, governor *quota.Governor, out chan<- ProgressEvent, total *int64) {
	sourceCtx, cancel := context.WithTimeout(ctx, PerVenueTimeout)
	defer cancel()

	var raw []extract.RawCandidate

	switch source.Type {
	case models.SourceTypeAggregator:
		if d.aggregator == nil {
			break
		}
		organizerID, ok := organizerIDFromURL(source.URL)
		if !ok {
			send(ctx, out, errorEvent(fmt.Sprintf("source %s: could not extract organizer id", source.Name)))
			break
		}
		cityID := req.CityID
		candidates, err := d.aggregator.FetchEvents(sourceCtx, organizerID, nil, &cityID)
		if err != nil {
			logger.EventWarn(ctx, "dispatch: aggregator source failed", "source_id", source.ID, "error", err)
			send(ctx, out, errorEvent(fmt.Sprintf("source %s: %v", source.Name, err)))
			break
		}
		raw = candidates

	case models.SourceTypeWebsite:
		cityID := req.CityID
		website := source.URL
		synthetic := models.Venue{Website: &website, CityID: cityID}
		candidates, err := d.scraper.ScrapeVenue(sourceCtx, synthetic, models.EventTypeGeneric, req.TimeRange, req.CustomFrom, req.CustomTo, governor)
		if err != nil {
			logger.EventWarn(ctx, "dispatch: website source failed", "source_id", source.ID, "error", err)
			send(ctx, out, errorEvent(fmt.Sprintf("source %s: %v", source.Name, err)))
			break
		}
		for i := range candidates {
			candidates[i].VenueID = nil
			candidates[i].Source = "website"
		}
		raw = candidates

	case models.SourceTypeSocial:
		logger.EventWarn(ctx, "dispatch: no extractor for social sources", "source_id", source.ID)
		return
	}

	send(ctx, out, progressEvent(50, "scraped", "", source.Name))
	d.ingestAndReport(ctx, raw, "", source.Name, governor, out, total)
}

// ingestAndReport converts raw candidates, flushes them through C6 and
// relays every persisted record onto the progress channel. Engine.Ingest
// already batches in groups of 5 and invokes onPersist per row, which
// is exactly spec.md §4.10 steps 5-6.
func (d *Dispatcher) ingestAndReport(ctx context.Context, raw []extract.RawCandidate, venueName, sourceName string, governor *quota.Governor, out chan<- ProgressEvent, total *int64) {
	if len(raw) == 0 {
		return
	}

	candidates := make([]ingest.Candidate, 0, len(raw))
	for _, r := range raw {
		c, err := toIngestCandidate(r)
		if err != nil {
			logger.EventWarn(ctx, "dispatch: dropping unparseable candidate", "title", r.Title, "error", err)
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return
	}

	_, err := d.engine.Ingest(ctx, candidates, governor, func(p ingest.Persisted) {
		atomic.AddInt64(total, 1)
		send(ctx, out, eventEvent(p.Event))
	})
	if err != nil {
		send(ctx, out, errorEvent(fmt.Sprintf("ingest: %v", err)))
	}
}
