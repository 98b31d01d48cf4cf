package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeClient_ParsesAddressComponents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{
					"formatted_address": "Washington, DC, USA",
					"geometry": map[string]any{
						"location": map[string]any{"lat": 38.8977, "lng": -77.0365},
					},
					"address_components": []map[string]any{
						{"long_name": "Washington", "short_name": "Washington", "types": []string{"locality"}},
						{"long_name": "District of Columbia", "short_name": "DC", "types": []string{"administrative_area_level_1"}},
						{"long_name": "United States", "short_name": "US", "types": []string{"country"}},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewGeocodeClient("test-key")
	client.SetBaseURL(server.URL)

	res, err := client.Geocode(context.Background(), "Washington, DC")
	require.NoError(t, err)
	assert.Equal(t, "Washington", res.CityName)
	assert.Equal(t, "DC", res.State)
	assert.True(t, res.HasCoord)
	assert.Equal(t, "America/New_York", res.Timezone)
}

func TestGeocodeClient_ZeroResultsIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))
	defer server.Close()

	client := NewGeocodeClient("test-key")
	client.SetBaseURL(server.URL)

	_, err := client.Geocode(context.Background(), "Nowhere")
	assert.Error(t, err)
}
