package site

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/quota"
)

func TestScrapeVenue_EmitsCandidateFromJSONLD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script type="application/ld+json">
		{"@type":"Event","name":"Finding Awe","startDate":"2026-04-10"}
		</script></head></html>`))
	}))
	defer srv.Close()

	website := srv.URL
	venue := models.Venue{ID: 1, CityID: 1, Website: &website}

	s := New(WithHTTPClient(srv.Client()))
	ctx := logger.NewContext(t.Context(), logger.Default())
	candidates, err := s.ScrapeVenue(ctx, venue, models.EventTypeTalk, extract.TimeRangeAll, nil, nil, quota.NewGovernor(5, 10))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Finding Awe", candidates[0].Title)
	assert.Equal(t, "website", candidates[0].Source)
}

func TestScrapeVenue_NoWebsiteReturnsValidationError(t *testing.T) {
	s := New()
	ctx := logger.NewContext(t.Context(), logger.Default())
	_, err := s.ScrapeVenue(ctx, models.Venue{}, models.EventTypeTalk, extract.TimeRangeAll, nil, nil, nil)
	assert.Error(t, err)
}

func TestScrapeVenue_FiltersOutsideWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script type="application/ld+json">
		{"@type":"Event","name":"Old Talk","startDate":"2020-01-01"}
		</script></head></html>`))
	}))
	defer srv.Close()

	website := srv.URL
	venue := models.Venue{ID: 2, CityID: 1, Website: &website}

	s := New(WithHTTPClient(srv.Client()))
	ctx := logger.NewContext(t.Context(), logger.Default())
	from := time.Now()
	to := from.AddDate(0, 0, 7)
	candidates, err := s.ScrapeVenue(ctx, venue, models.EventTypeTalk, extract.TimeRangeCustom, &from, &to, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
