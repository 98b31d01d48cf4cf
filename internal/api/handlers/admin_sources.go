package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
)

type SourceAdminHandler struct {
	db *gorm.DB
}

func NewSourceAdminHandler(db *gorm.DB) *SourceAdminHandler {
	return &SourceAdminHandler{db: db}
}

type AddSourceRequest struct {
	Body struct {
		Name       string             `json:"name"`
		Handle     string             `json:"handle"`
		Type       models.SourceType  `json:"type"`
		URL        string             `json:"url"`
		EventTypes models.StringSlice `json:"event_types,omitempty"`
		CityIDs    []uint             `json:"city_ids"`
	}
}

type SourceResponse struct {
	Body struct {
		Source models.SourceView `json:"source"`
	}
}

// AddSourceHandler handles POST /api/admin/add-source. CityIDs resolves
// city names at write time so SourceView.CoveredCities stays a denormalized
// snapshot, matching how Venue/City names are embedded in EventView.
func (h *SourceAdminHandler) AddSourceHandler(ctx context.Context, req *AddSourceRequest) (*SourceResponse, error) {
	name, ok := normalize.CleanText(req.Body.Name)
	if !ok {
		return nil, huma.Error400BadRequest("name is required")
	}
	url, ok := normalize.CleanURL(req.Body.URL)
	if !ok {
		return nil, huma.Error400BadRequest("url is required and must be valid")
	}
	if len(req.Body.CityIDs) == 0 {
		return nil, huma.Error400BadRequest("at least one city_id is required")
	}

	var cities []models.City
	if err := h.db.WithContext(ctx).Find(&cities, req.Body.CityIDs).Error; err != nil {
		return nil, err
	}
	if len(cities) != len(req.Body.CityIDs) {
		return nil, huma.Error400BadRequest("one or more city_ids do not reference an existing city")
	}
	covered := make(models.StringSlice, 0, len(cities))
	for _, c := range cities {
		covered = append(covered, c.Name)
	}

	source := models.Source{
		Name: name, Handle: req.Body.Handle, Type: req.Body.Type, URL: url,
		EventTypes: req.Body.EventTypes, CoveredCities: covered,
		CoversMultipleCities: len(covered) > 1, IsActive: true,
	}
	if err := h.db.WithContext(ctx).Create(&source).Error; err != nil {
		return nil, huma.Error409Conflict("source already exists", err)
	}

	resp := &SourceResponse{}
	resp.Body.Source = source.ToView()
	return resp, nil
}

type UpdateSourceRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Name       *string             `json:"name,omitempty"`
		URL        *string             `json:"url,omitempty"`
		EventTypes *models.StringSlice `json:"event_types,omitempty"`
		IsActive   *bool               `json:"is_active,omitempty"`
		CityIDs    []uint              `json:"city_ids,omitempty"`
	}
}

// UpdateSourceHandler handles PUT /api/admin/sources/{id}.
func (h *SourceAdminHandler) UpdateSourceHandler(ctx context.Context, req *UpdateSourceRequest) (*SourceResponse, error) {
	var source models.Source
	if err := h.db.WithContext(ctx).First(&source, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("source not found")
		}
		return nil, err
	}

	if req.Body.Name != nil {
		if name, ok := normalize.CleanText(*req.Body.Name); ok {
			source.Name = name
		}
	}
	if req.Body.URL != nil {
		if url, ok := normalize.CleanURL(*req.Body.URL); ok {
			source.URL = url
		}
	}
	if req.Body.EventTypes != nil {
		source.EventTypes = *req.Body.EventTypes
	}
	if req.Body.IsActive != nil {
		source.IsActive = *req.Body.IsActive
	}
	if len(req.Body.CityIDs) > 0 {
		var cities []models.City
		if err := h.db.WithContext(ctx).Find(&cities, req.Body.CityIDs).Error; err != nil {
			return nil, err
		}
		covered := make(models.StringSlice, 0, len(cities))
		for _, c := range cities {
			covered = append(covered, c.Name)
		}
		source.CoveredCities = covered
		source.CoversMultipleCities = len(covered) > 1
	}

	if err := h.db.WithContext(ctx).Save(&source).Error; err != nil {
		return nil, err
	}

	resp := &SourceResponse{}
	resp.Body.Source = source.ToView()
	return resp, nil
}

type DeleteSourceRequest struct {
	ID uint `path:"id"`
}

// DeleteSourceHandler handles DELETE /api/admin/sources/{id}.
func (h *SourceAdminHandler) DeleteSourceHandler(ctx context.Context, req *DeleteSourceRequest) (*struct{}, error) {
	result := h.db.WithContext(ctx).Delete(&models.Source{}, req.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("source not found")
	}
	return nil, nil
}
