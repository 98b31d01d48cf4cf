package geo

import (
	"context"

	"culturefeed-backend/internal/normalize"
)

// Resolver implements the C2 algorithm: normalize, cache probe,
// geocode on miss, timezone fallback on further miss.
type Resolver struct {
	cache  *Cache
	client *GeocodeClient
}

func NewResolver(client *GeocodeClient) *Resolver {
	return &Resolver{cache: NewCache(), client: client}
}

// Resolve maps free-text name/country/state to a canonical
// Resolution. Always returns a valid IANA timezone (UTC as last
// resort). The Resolution carries no flag that tells a UTC default
// apart from a timezone that was actually resolved.
func (r *Resolver) Resolve(ctx context.Context, name, country, state string) Resolution {
	cityName, ok := normalize.FormatCityName(name)
	if !ok {
		cityName = name
	}
	countryName, _ := normalize.FormatCountryName(country)

	if cached, hit := r.cache.Get(cityName, countryName); hit {
		return cached
	}

	if r.client != nil {
		query := cityName
		if countryName != "" {
			query = cityName + ", " + countryName
		}
		if res, err := r.client.Geocode(ctx, query); err == nil {
			if res.CityName == "" {
				res.CityName = cityName
			}
			if res.Country == "" {
				res.Country = countryName
			}
			if res.State == "" {
				res.State = state
			}
			r.cache.Put(cityName, countryName, res)
			return res
		}
	}

	tz, resolved := FallbackTimezone(countryName, state)
	res := Resolution{
		CityName: cityName,
		State:    state,
		Country:  countryName,
		Timezone: tz,
	}
	if !resolved {
		res.Timezone = "UTC"
	}
	r.cache.Put(cityName, countryName, res)
	return res
}
