package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"culturefeed-backend/internal/geo"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
)

type CityAdminHandler struct {
	db       *gorm.DB
	resolver *geo.Resolver
}

func NewCityAdminHandler(db *gorm.DB, resolver *geo.Resolver) *CityAdminHandler {
	return &CityAdminHandler{db: db, resolver: resolver}
}

type AddCityRequest struct {
	Body struct {
		Name     string  `json:"name"`
		State    *string `json:"state,omitempty"`
		Country  string  `json:"country"`
		Timezone string  `json:"timezone,omitempty"`
	}
}

type CityResponse struct {
	Body struct {
		City models.CityView `json:"city"`
	}
}

// AddCityHandler handles POST /api/admin/add-city, normalizing name/country
// through C1 before the (name, state, country) unique index is checked.
func (h *CityAdminHandler) AddCityHandler(ctx context.Context, req *AddCityRequest) (*CityResponse, error) {
	name, ok := normalize.FormatCityName(req.Body.Name)
	if !ok {
		return nil, huma.Error400BadRequest("name is required")
	}
	country, ok := normalize.FormatCountryName(req.Body.Country)
	if !ok {
		return nil, huma.Error400BadRequest("country is required")
	}

	timezone := req.Body.Timezone
	if timezone == "" && h.resolver != nil {
		state := ""
		if req.Body.State != nil {
			state = *req.Body.State
		}
		timezone = h.resolver.Resolve(ctx, name, country, state).Timezone
	}
	if timezone == "" {
		return nil, huma.Error400BadRequest("timezone is required and could not be resolved")
	}

	city := models.City{Name: name, State: req.Body.State, Country: country, Timezone: timezone}
	if err := h.db.WithContext(ctx).Create(&city).Error; err != nil {
		return nil, huma.Error409Conflict("city already exists", err)
	}

	resp := &CityResponse{}
	resp.Body.City = city.ToView()
	return resp, nil
}

type UpdateCityRequest struct {
	ID   uint `path:"id"`
	Body struct {
		Name     *string `json:"name,omitempty"`
		State    *string `json:"state,omitempty"`
		Country  *string `json:"country,omitempty"`
		Timezone *string `json:"timezone,omitempty"`
	}
}

// UpdateCityHandler handles PUT /api/admin/cities/{id}.
func (h *CityAdminHandler) UpdateCityHandler(ctx context.Context, req *UpdateCityRequest) (*CityResponse, error) {
	var city models.City
	if err := h.db.WithContext(ctx).First(&city, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("city not found")
		}
		return nil, err
	}

	if req.Body.Name != nil {
		if name, ok := normalize.FormatCityName(*req.Body.Name); ok {
			city.Name = name
		}
	}
	if req.Body.State != nil {
		city.State = req.Body.State
	}
	if req.Body.Country != nil {
		if country, ok := normalize.FormatCountryName(*req.Body.Country); ok {
			city.Country = country
		}
	}
	if req.Body.Timezone != nil {
		city.Timezone = *req.Body.Timezone
	}

	if err := h.db.WithContext(ctx).Save(&city).Error; err != nil {
		return nil, err
	}

	resp := &CityResponse{}
	resp.Body.City = city.ToView()
	return resp, nil
}

type DeleteCityRequest struct {
	ID uint `path:"id"`
}

// DeleteCityHandler handles DELETE /api/admin/cities/{id}.
func (h *CityAdminHandler) DeleteCityHandler(ctx context.Context, req *DeleteCityRequest) (*struct{}, error) {
	result := h.db.WithContext(ctx).Delete(&models.City{}, req.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("city not found")
	}
	return nil, nil
}
