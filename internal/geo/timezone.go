package geo

import "strings"

// stateTimezones extends the teacher's discovery.go lookup table
// (originally {AZ, CA, NV, CO, NM, TX, NY}) to the full US state set,
// used as the fallback when geocoding is unconfigured or fails.
var stateTimezones = map[string]string{
	"AL": "America/Chicago", "AK": "America/Anchorage", "AZ": "America/Phoenix",
	"AR": "America/Chicago", "CA": "America/Los_Angeles", "CO": "America/Denver",
	"CT": "America/New_York", "DE": "America/New_York", "DC": "America/New_York",
	"FL": "America/New_York", "GA": "America/New_York", "HI": "Pacific/Honolulu",
	"ID": "America/Denver", "IL": "America/Chicago", "IN": "America/New_York",
	"IA": "America/Chicago", "KS": "America/Chicago", "KY": "America/New_York",
	"LA": "America/Chicago", "ME": "America/New_York", "MD": "America/New_York",
	"MA": "America/New_York", "MI": "America/New_York", "MN": "America/Chicago",
	"MS": "America/Chicago", "MO": "America/Chicago", "MT": "America/Denver",
	"NE": "America/Chicago", "NV": "America/Los_Angeles", "NH": "America/New_York",
	"NJ": "America/New_York", "NM": "America/Denver", "NY": "America/New_York",
	"NC": "America/New_York", "ND": "America/Chicago", "OH": "America/New_York",
	"OK": "America/Chicago", "OR": "America/Los_Angeles", "PA": "America/New_York",
	"RI": "America/New_York", "SC": "America/New_York", "SD": "America/Chicago",
	"TN": "America/Chicago", "TX": "America/Chicago", "UT": "America/Denver",
	"VT": "America/New_York", "VA": "America/New_York", "WA": "America/Los_Angeles",
	"WV": "America/New_York", "WI": "America/Chicago", "WY": "America/Denver",
}

// countryTimezones is a handful of country-level defaults used when no
// state is present and geocoding didn't resolve a timezone.
var countryTimezones = map[string]string{
	"united states": "America/New_York",
	"usa":           "America/New_York",
	"united kingdom": "Europe/London",
	"uk":            "Europe/London",
	"france":        "Europe/Paris",
	"germany":       "Europe/Berlin",
	"japan":         "Asia/Tokyo",
	"canada":        "America/Toronto",
}

// FallbackTimezone resolves an IANA zone from (country, state) without
// calling the geocoder. Defaults to UTC (and the caller should flag the
// result as unresolved) when nothing matches.
func FallbackTimezone(country, state string) (tz string, resolved bool) {
	if state != "" {
		if tz, ok := stateTimezones[strings.ToUpper(state)]; ok {
			return tz, true
		}
	}
	if country != "" {
		if tz, ok := countryTimezones[strings.ToLower(country)]; ok {
			return tz, true
		}
	}
	return "UTC", false
}
