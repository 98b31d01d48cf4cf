package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"culturefeed-backend/internal/dispatch"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
)

type ScrapeHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewScrapeHandler(dispatcher *dispatch.Dispatcher) *ScrapeHandler {
	return &ScrapeHandler{dispatcher: dispatcher}
}

type ScrapeRequestBody struct {
	Body struct {
		CityID                 uint       `json:"city_id"`
		EventType              *string    `json:"event_type,omitempty"`
		TimeRange              string     `json:"time_range,omitempty"`
		VenueIDs               []uint     `json:"venue_ids,omitempty"`
		SourceIDs              []uint     `json:"source_ids,omitempty"`
		CustomFrom             *time.Time `json:"custom_from,omitempty"`
		CustomTo               *time.Time `json:"custom_to,omitempty"`
		MaxExhibitionsPerVenue int        `json:"max_exhibitions_per_venue,omitempty"`
		MaxEventsPerVenue      int        `json:"max_events_per_venue,omitempty"`
	}
}

type ScrapeResponse struct {
	Body struct {
		EventsAdded int      `json:"events_added"`
		Errors      []string `json:"errors,omitempty"`
	}
}

func buildDispatchRequest(body ScrapeRequestBody) dispatch.Request {
	req := dispatch.Request{
		CityID:                 body.Body.CityID,
		TimeRange:              extract.TimeRange(body.Body.TimeRange),
		VenueIDs:               body.Body.VenueIDs,
		SourceIDs:              body.Body.SourceIDs,
		CustomFrom:             body.Body.CustomFrom,
		CustomTo:               body.Body.CustomTo,
		MaxExhibitionsPerVenue: body.Body.MaxExhibitionsPerVenue,
		MaxEventsPerVenue:      body.Body.MaxEventsPerVenue,
	}
	if body.Body.EventType != nil {
		et := models.NormalizeEventType(*body.Body.EventType)
		req.EventType = &et
	}
	if req.TimeRange == "" {
		req.TimeRange = extract.TimeRangeAll
	}
	return req
}

// ScrapeHandler handles POST /api/scrape, draining the dispatcher's
// progress channel synchronously and returning a single tally.
func (h *ScrapeHandler) ScrapeHandler(ctx context.Context, req *ScrapeRequestBody) (*ScrapeResponse, error) {
	dispatchReq := buildDispatchRequest(*req)
	if !dispatchReq.Valid() {
		return nil, huma.Error400BadRequest(dispatch.InvalidRequestMessage(dispatchReq))
	}

	resp := &ScrapeResponse{}
	for ev := range h.dispatcher.Dispatch(ctx, dispatchReq) {
		switch ev.Type {
		case dispatch.ProgressTypeEvent:
			resp.Body.EventsAdded++
		case dispatch.ProgressTypeError:
			resp.Body.Errors = append(resp.Body.Errors, ev.Message)
		case dispatch.ProgressTypeComplete:
			resp.Body.EventsAdded = ev.TotalEvents
		}
	}
	return resp, nil
}

// ScrapeStreamHandler handles POST /api/scrape-stream, relaying the
// dispatcher's progress channel to the client as Server-Sent Events.
// This is a plain http.HandlerFunc rather than a Huma operation since
// Huma does not model a streaming response body.
func (h *ScrapeHandler) ScrapeStreamHandler(w http.ResponseWriter, r *http.Request) {
	var body ScrapeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body.Body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	dispatchReq := buildDispatchRequest(body)
	if !dispatchReq.Valid() {
		http.Error(w, dispatch.InvalidRequestMessage(dispatchReq), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	for ev := range h.dispatcher.Dispatch(ctx, dispatchReq) {
		payload, err := json.Marshal(ev)
		if err != nil {
			logger.EventError(ctx, "scrape_stream_marshal_failed", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload); err != nil {
			return
		}
		flusher.Flush()
	}
}
