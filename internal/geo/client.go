package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"culturefeed-backend/internal/errors"
)

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// GeocodeClient calls the Google Maps Geocoding API. Same *http.Client
// + explicit timeout pattern as the teacher's ExtractionService.
type GeocodeClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewGeocodeClient(apiKey string) *GeocodeClient {
	return &GeocodeClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultGeocodeBaseURL,
	}
}

// SetBaseURL overrides the API base URL. Intended for tests.
func (c *GeocodeClient) SetBaseURL(u string) {
	c.baseURL = u
}

// Geocode resolves a free-text address/place query to a Resolution.
// Returns TransientIO for network/5xx failures (retryable) and a plain
// error for an empty result set (GeocodingUnknown, per
// spec.md §4.2 — caller falls back to FallbackTimezone).
func (c *GeocodeClient) Geocode(ctx context.Context, query string) (Resolution, error) {
	if c.apiKey == "" {
		return Resolution{}, fmt.Errorf("geo: geocoding unconfigured")
	}
	endpoint := fmt.Sprintf("%s?address=%s&key=%s", c.baseURL, url.QueryEscape(query), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Resolution{}, errors.NewTransientIO("geo.geocode.build_request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Resolution{}, errors.NewTransientIO("geo.geocode.fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Resolution{}, errors.NewTransientIO("geo.geocode.fetch", fmt.Errorf("status %d", resp.StatusCode))
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Resolution{}, errors.NewParseError("geo.geocode.decode", err)
	}

	if data.Status != "OK" || len(data.Results) == 0 {
		return Resolution{}, fmt.Errorf("geo: no geocoding match (status %s)", data.Status)
	}

	top := data.Results[0]
	res := Resolution{
		Lat:      top.Geometry.Location.Lat,
		Lon:      top.Geometry.Location.Lng,
		HasCoord: true,
	}
	for _, comp := range top.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality":
				res.CityName = comp.LongName
			case "administrative_area_level_1":
				res.State = comp.ShortName
			case "country":
				res.Country = comp.LongName
			}
		}
	}
	if tz, ok := FallbackTimezone(res.Country, res.State); ok {
		res.Timezone = tz
	} else {
		res.Timezone = "UTC"
	}
	return res, nil
}
