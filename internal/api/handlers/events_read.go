package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	apperrors "culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/models"
)

type EventsReadHandler struct {
	db             *gorm.DB
	blockedHosts   []string
	imageProxyPath string
}

func NewEventsReadHandler(db *gorm.DB, blockedHosts []string) *EventsReadHandler {
	return &EventsReadHandler{db: db, blockedHosts: blockedHosts, imageProxyPath: "/api/image-proxy"}
}

type ListEventsRequest struct {
	CityID          uint   `query:"city_id" required:"true" doc:"City to list events for"`
	TimeRange       string `query:"time_range" default:"all" doc:"today|tomorrow|this_week|next_week|this_month|next_month|custom|all"`
	EventType       string `query:"event_type" doc:"Filter by event type"`
	CustomStartDate string `query:"custom_start_date" doc:"RFC3339 date, required when time_range=custom"`
	CustomEndDate   string `query:"custom_end_date" doc:"RFC3339 date, required when time_range=custom"`
}

type ListEventsResponse struct {
	Body struct {
		Events []models.EventView `json:"events"`
	}
}

// ListEventsHandler handles GET /api/events (spec.md §6.1). time_range
// is resolved against the city's local date; exhibitions match by
// interval overlap, all other event types match by start_date falling
// in the window.
func (h *EventsReadHandler) ListEventsHandler(ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error) {
	db := h.db.WithContext(ctx)

	var city models.City
	if err := db.First(&city, req.CityID).Error; err != nil {
		return nil, huma.Error404NotFound("city not found")
	}

	loc, err := time.LoadLocation(city.Timezone)
	if err != nil {
		loc = time.UTC
	}

	tr := extract.TimeRange(req.TimeRange)
	var customFrom, customTo *time.Time
	if tr == extract.TimeRangeCustom {
		from, to, err := parseCustomRange(req.CustomStartDate, req.CustomEndDate, loc)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		customFrom, customTo = &from, &to
	}

	today := time.Now().In(loc)
	from, to := site.Window(tr, today, customFrom, customTo)

	q := db.Preload("Venue.City").Preload("City").Where("city_id = ? OR venue_id IN (?)",
		req.CityID, db.Model(&models.Venue{}).Select("id").Where("city_id = ?", req.CityID))
	if req.EventType != "" {
		q = q.Where("event_type = ?", req.EventType)
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}

	resp := &ListEventsResponse{}
	resp.Body.Events = make([]models.EventView, 0, len(events))
	for _, e := range events {
		if !matchesWindow(e, from, to) {
			continue
		}
		resp.Body.Events = append(resp.Body.Events, e.ToView(h.blockedHosts, h.imageProxyPath))
	}
	return resp, nil
}

// matchesWindow applies spec.md §6.1's per-type date-filter rule:
// exhibitions match by interval overlap, everything else by a point
// match of start_date against the window.
func matchesWindow(e models.Event, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if e.EventType == models.EventTypeExhibition {
		return site.InWindow(e.StartDate, e.EndDate, from, to)
	}
	start := truncateToDay(e.StartDate)
	return !start.Before(from) && !start.After(to)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseCustomRange(startRaw, endRaw string, loc *time.Location) (time.Time, time.Time, error) {
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("time_range", "custom_start_date and custom_end_date are both required when time_range=custom")
	}
	start, err := time.ParseInLocation("2006-01-02", startRaw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("custom_start_date", "must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", endRaw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("custom_end_date", "must be YYYY-MM-DD")
	}
	return start, end, nil
}
