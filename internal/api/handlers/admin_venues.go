package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
)

type VenueAdminHandler struct {
	db               *gorm.DB
	maxVenuesPerCity int
}

func NewVenueAdminHandler(db *gorm.DB, maxVenuesPerCity int) *VenueAdminHandler {
	return &VenueAdminHandler{db: db, maxVenuesPerCity: maxVenuesPerCity}
}

type AddVenueRequest struct {
	Body struct {
		Name         string            `json:"name"`
		Type         models.VenueType  `json:"type"`
		CityID       uint              `json:"city_id"`
		Address      *string           `json:"address,omitempty"`
		Lat          *float64          `json:"lat,omitempty"`
		Lon          *float64          `json:"lon,omitempty"`
		Website      *string           `json:"website,omitempty"`
		TicketingURL *string           `json:"ticketing_url,omitempty"`
		Hours        *string           `json:"hours,omitempty"`
		Contact      *string           `json:"contact,omitempty"`
		Description  *string           `json:"description,omitempty"`
		SocialURLs   models.SocialURLs `json:"social_urls,omitempty"`
	}
}

type VenueResponse struct {
	Body struct {
		Venue models.VenueView `json:"venue"`
	}
}

// AddVenueHandler handles POST /api/admin/add-venue. A name that
// matches an existing venue of the same city, ignoring case, surfaces
// as 409 rather than silently merging, since venue identity merges are
// an explicit admin decision, not a dedup-engine one.
func (h *VenueAdminHandler) AddVenueHandler(ctx context.Context, req *AddVenueRequest) (*VenueResponse, error) {
	name, ok := normalize.FormatVenueName(req.Body.Name)
	if !ok {
		return nil, huma.Error400BadRequest("name is required")
	}
	if req.Body.CityID == 0 {
		return nil, huma.Error400BadRequest("city_id is required")
	}
	var city models.City
	if err := h.db.WithContext(ctx).First(&city, req.Body.CityID).Error; err != nil {
		return nil, huma.Error400BadRequest("city_id does not reference an existing city")
	}

	var clash int64
	if err := h.db.WithContext(ctx).Model(&models.Venue{}).Where("city_id = ? AND LOWER(name) = LOWER(?)", req.Body.CityID, name).Count(&clash).Error; err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, huma.Error409Conflict("venue already exists in this city")
	}

	if h.maxVenuesPerCity > 0 {
		var count int64
		if err := h.db.WithContext(ctx).Model(&models.Venue{}).Where("city_id = ?", req.Body.CityID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(h.maxVenuesPerCity) {
			return nil, huma.Error409Conflict("city has reached its venue quota")
		}
	}

	venue := models.Venue{
		Name: name, Type: req.Body.Type, CityID: req.Body.CityID,
		Address: req.Body.Address, Lat: req.Body.Lat, Lon: req.Body.Lon,
		Website: req.Body.Website, TicketingURL: req.Body.TicketingURL,
		Hours: req.Body.Hours, Contact: req.Body.Contact, Description: req.Body.Description,
		SocialURLs: req.Body.SocialURLs,
	}
	if err := h.db.WithContext(ctx).Create(&venue).Error; err != nil {
		return nil, huma.Error409Conflict("venue already exists in this city", err)
	}

	resp := &VenueResponse{}
	resp.Body.Venue = venue.ToView()
	return resp, nil
}

type UpdateVenueRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Name         *string            `json:"name,omitempty"`
		Type         *models.VenueType  `json:"type,omitempty"`
		Address      *string            `json:"address,omitempty"`
		Lat          *float64           `json:"lat,omitempty"`
		Lon          *float64           `json:"lon,omitempty"`
		Website      *string            `json:"website,omitempty"`
		TicketingURL *string            `json:"ticketing_url,omitempty"`
		Hours        *string            `json:"hours,omitempty"`
		Contact      *string            `json:"contact,omitempty"`
		Description  *string            `json:"description,omitempty"`
	}
}

// UpdateVenueHandler handles PUT /api/admin/venues/{id}.
func (h *VenueAdminHandler) UpdateVenueHandler(ctx context.Context, req *UpdateVenueRequest) (*VenueResponse, error) {
	var venue models.Venue
	if err := h.db.WithContext(ctx).First(&venue, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("venue not found")
		}
		return nil, err
	}

	if req.Body.Name != nil {
		if name, ok := normalize.FormatVenueName(*req.Body.Name); ok {
			venue.Name = name
		}
	}
	if req.Body.Type != nil {
		venue.Type = *req.Body.Type
	}
	if req.Body.Address != nil {
		venue.Address = req.Body.Address
	}
	if req.Body.Lat != nil {
		venue.Lat = req.Body.Lat
	}
	if req.Body.Lon != nil {
		venue.Lon = req.Body.Lon
	}
	if req.Body.Website != nil {
		venue.Website = req.Body.Website
	}
	if req.Body.TicketingURL != nil {
		venue.TicketingURL = req.Body.TicketingURL
	}
	if req.Body.Hours != nil {
		venue.Hours = req.Body.Hours
	}
	if req.Body.Contact != nil {
		venue.Contact = req.Body.Contact
	}
	if req.Body.Description != nil {
		venue.Description = req.Body.Description
	}

	if err := h.db.WithContext(ctx).Save(&venue).Error; err != nil {
		return nil, err
	}

	resp := &VenueResponse{}
	resp.Body.Venue = venue.ToView()
	return resp, nil
}

type DeleteVenueRequest struct {
	ID uint `path:"id"`
}

// DeleteVenueHandler handles DELETE /api/admin/venues/{id}. Cascades
// to the venue's events at the DB level (internal/schema foreign key).
func (h *VenueAdminHandler) DeleteVenueHandler(ctx context.Context, req *DeleteVenueRequest) (*struct{}, error) {
	result := h.db.WithContext(ctx).Delete(&models.Venue{}, req.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("venue not found")
	}
	return nil, nil
}
