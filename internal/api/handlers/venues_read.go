package handlers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
)

type VenuesReadHandler struct {
	db *gorm.DB
}

func NewVenuesReadHandler(db *gorm.DB) *VenuesReadHandler {
	return &VenuesReadHandler{db: db}
}

type ListVenuesRequest struct {
	CityID      uint   `query:"city_id" doc:"Filter by city"`
	VenueTypes  string `query:"venue_types" doc:"Comma-separated venue types to include"`
}

type ListVenuesResponse struct {
	Body struct {
		Venues []models.VenueView `json:"venues"`
	}
}

// ListVenuesHandler handles GET /api/venues (spec.md §6.1): sorted by
// updated_at desc, omitting permanently closed venues.
func (h *VenuesReadHandler) ListVenuesHandler(ctx context.Context, req *ListVenuesRequest) (*ListVenuesResponse, error) {
	q := h.db.WithContext(ctx).Order("updated_at desc")
	if req.CityID != 0 {
		q = q.Where("city_id = ?", req.CityID)
	}
	if req.VenueTypes != "" {
		types := strings.Split(req.VenueTypes, ",")
		q = q.Where("type IN ?", types)
	}

	var venues []models.Venue
	if err := q.Find(&venues).Error; err != nil {
		return nil, err
	}

	resp := &ListVenuesResponse{}
	resp.Body.Venues = make([]models.VenueView, 0, len(venues))
	for _, v := range venues {
		if v.IsClosed() {
			continue
		}
		resp.Body.Venues = append(resp.Body.Venues, v.ToView())
	}
	return resp, nil
}
