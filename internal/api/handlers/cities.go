package handlers

import (
	"context"

	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
)

type CitiesHandler struct {
	db *gorm.DB
}

func NewCitiesHandler(db *gorm.DB) *CitiesHandler {
	return &CitiesHandler{db: db}
}

type ListCitiesResponse struct {
	Body struct {
		Cities []models.CityView `json:"cities"`
	}
}

// ListCitiesHandler handles GET /api/cities (spec.md §6.1).
func (h *CitiesHandler) ListCitiesHandler(ctx context.Context, input *struct{}) (*ListCitiesResponse, error) {
	var cities []models.City
	if err := h.db.WithContext(ctx).Order("name asc").Find(&cities).Error; err != nil {
		return nil, err
	}

	resp := &ListCitiesResponse{}
	resp.Body.Cities = make([]models.CityView, 0, len(cities))
	for _, c := range cities {
		resp.Body.Cities = append(resp.Body.Cities, c.ToView())
	}
	return resp, nil
}
