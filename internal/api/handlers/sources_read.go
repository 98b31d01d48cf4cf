package handlers

import (
	"context"

	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
)

type SourcesReadHandler struct {
	db *gorm.DB
}

func NewSourcesReadHandler(db *gorm.DB) *SourcesReadHandler {
	return &SourcesReadHandler{db: db}
}

type ListSourcesRequest struct {
	CityID uint `query:"city_id" doc:"Filter sources covering this city"`
}

type ListSourcesResponse struct {
	Body struct {
		Sources []models.SourceView `json:"sources"`
	}
}

// ListSourcesHandler handles GET /api/sources (spec.md §6.1). A source
// covering multiple cities is matched against CoveredCities rather than
// a single city_id column.
func (h *SourcesReadHandler) ListSourcesHandler(ctx context.Context, req *ListSourcesRequest) (*ListSourcesResponse, error) {
	db := h.db.WithContext(ctx)

	var sources []models.Source
	if err := db.Where("is_active = ?", true).Find(&sources).Error; err != nil {
		return nil, err
	}

	var cityName string
	if req.CityID != 0 {
		var city models.City
		if err := db.First(&city, req.CityID).Error; err == nil {
			cityName = city.Name
		}
	}

	resp := &ListSourcesResponse{}
	resp.Body.Sources = make([]models.SourceView, 0, len(sources))
	for _, s := range sources {
		if cityName != "" && !containsCityName(s.CoveredCities, cityName) {
			continue
		}
		resp.Body.Sources = append(resp.Body.Sources, s.ToView())
	}
	return resp, nil
}

// containsCityName checks a source's free-text CoveredCities list for cityName.
func containsCityName(covered models.StringSlice, cityName string) bool {
	for _, name := range covered {
		if name == cityName {
			return true
		}
	}
	return false
}
