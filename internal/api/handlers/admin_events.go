package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	apperrors "culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/eventtime"
	"culturefeed-backend/internal/ingest"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
	"culturefeed-backend/internal/quota"
	"culturefeed-backend/internal/sweep"
)

type EventAdminHandler struct {
	db     *gorm.DB
	engine *ingest.Engine
}

func NewEventAdminHandler(db *gorm.DB, engine *ingest.Engine) *EventAdminHandler {
	return &EventAdminHandler{db: db, engine: engine}
}

type CreateEventFromDataRequest struct {
	Body struct {
		Title         string                    `json:"title"`
		Description   string                    `json:"description,omitempty"`
		EventType     models.EventType          `json:"event_type"`
		StartDate     string                    `json:"start_date"`
		EndDate       *string                   `json:"end_date,omitempty"`
		URL           string                    `json:"url,omitempty"`
		ImageURL      string                    `json:"image_url,omitempty"`
		VenueID       *uint                     `json:"venue_id,omitempty"`
		CityID        *uint                     `json:"city_id,omitempty"`
		TypeExtension models.EventTypeExtension `json:"type_extension,omitempty"`
	}
}

type CreateEventResponse struct {
	Body struct {
		Event   models.EventView `json:"event"`
		Created bool             `json:"created"`
	}
}

// CreateEventFromDataHandler handles POST /api/admin/create-event-from-data,
// running the admin-submitted event through the same C6 ingest engine the
// scrape pipeline uses, so a manually entered event is deduped against
// scraped ones exactly the same way.
func (h *EventAdminHandler) CreateEventFromDataHandler(ctx context.Context, req *CreateEventFromDataRequest) (*CreateEventResponse, error) {
	title, ok := normalize.CleanText(req.Body.Title)
	if !ok {
		return nil, huma.Error400BadRequest("title is required")
	}

	candidate, err := buildCandidateFromRequest(req, title)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	governor := quota.NewGovernor(0, 0)
	var persisted ingest.Persisted
	var got bool
	outcome, err := h.engine.Ingest(ctx, []ingest.Candidate{candidate}, governor, func(p ingest.Persisted) {
		persisted = p
		got = true
	})
	if err != nil {
		return nil, err
	}
	if !got {
		return nil, huma.Error409Conflict("event rejected by ingest (duplicate, quota, or invalid)")
	}

	resp := &CreateEventResponse{}
	resp.Body.Event = persisted.Event.ToView(nil, "/api/image-proxy")
	resp.Body.Created = outcome.Created > 0
	return resp, nil
}

type UpdateEventRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Title       *string `json:"title,omitempty"`
		Description *string `json:"description,omitempty"`
		URL         *string `json:"url,omitempty"`
		ImageURL    *string `json:"image_url,omitempty"`
	}
}

type UpdateEventResponse struct {
	Body struct {
		Event models.EventView `json:"event"`
	}
}

// UpdateEventHandler handles PUT /api/admin/events/{id}, a direct field
// patch bypassing the dedup engine: the admin already identified the
// exact row to change.
func (h *EventAdminHandler) UpdateEventHandler(ctx context.Context, req *UpdateEventRequest) (*UpdateEventResponse, error) {
	var event models.Event
	if err := h.db.WithContext(ctx).First(&event, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("event not found")
		}
		return nil, err
	}

	if req.Body.Title != nil {
		if title, ok := normalize.CleanText(*req.Body.Title); ok {
			event.Title = title
		}
	}
	if req.Body.Description != nil {
		event.Description = *req.Body.Description
	}
	if req.Body.URL != nil {
		if u, ok := normalize.CleanURL(*req.Body.URL); ok {
			event.URL = u
		}
	}
	if req.Body.ImageURL != nil {
		if u, ok := normalize.CleanURL(*req.Body.ImageURL); ok {
			event.ImageURL = u
		}
	}

	if err := h.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, err
	}

	resp := &UpdateEventResponse{}
	resp.Body.Event = event.ToView(nil, "/api/image-proxy")
	return resp, nil
}

type DeleteEventRequest struct {
	ID uint `path:"id"`
}

func (h *EventAdminHandler) DeleteEventHandler(ctx context.Context, req *DeleteEventRequest) (*struct{}, error) {
	result := h.db.WithContext(ctx).Delete(&models.Event{}, req.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("event not found")
	}
	return nil, nil
}

type ClearPastEventsResponse struct {
	Body struct {
		Deleted int64 `json:"deleted"`
	}
}

// ClearPastEventsHandler handles POST /api/admin/clear-past-events,
// running the same deletion the weekly sweep runs on-demand.
func (h *EventAdminHandler) ClearPastEventsHandler(ctx context.Context, _ *struct{}) (*ClearPastEventsResponse, error) {
	deleted, err := sweep.ClearPastEvents(h.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	resp := &ClearPastEventsResponse{}
	resp.Body.Deleted = deleted
	return resp, nil
}

func buildCandidateFromRequest(req *CreateEventFromDataRequest, title string) (ingest.Candidate, error) {
	startDate, err := eventtime.ParseDate(req.Body.StartDate)
	if err != nil {
		return ingest.Candidate{}, apperrors.NewValidationError("start_date", "must be YYYY-MM-DD")
	}

	c := ingest.Candidate{
		Title:         title,
		Description:   req.Body.Description,
		EventType:     models.NormalizeEventType(string(req.Body.EventType)),
		StartDate:     startDate,
		URL:           req.Body.URL,
		ImageURL:      req.Body.ImageURL,
		VenueID:       req.Body.VenueID,
		CityID:        req.Body.CityID,
		TypeExtension: req.Body.TypeExtension,
		Language:      "English",
	}
	if req.Body.EndDate != nil {
		if end, err := eventtime.ParseDate(*req.Body.EndDate); err == nil {
			c.EndDate = &end
		}
	}
	return c, nil
}
