package image

import "strings"

// WellKnownVenue is an entry in the configurable auto-attach registry
// named in spec.md §4.9 step 6.
type WellKnownVenue struct {
	NamePattern string
	VenueID     uint
}

// ApplyHeuristics layers the OCR-text heuristics from spec.md §4.9
// step 6 on top of the LLM's own judgment, only overriding fields the
// LLM left at their zero value or contradicted.
func ApplyHeuristics(parsed map[string]any, ocrText string) map[string]any {
	lowerOCR := strings.ToLower(ocrText)

	if strings.Contains(lowerOCR, "register now") {
		parsed["is_registration_required"] = true
	}

	hasVirtual := strings.Contains(lowerOCR, "virtual")
	hasInPerson := strings.Contains(lowerOCR, "in-person")
	switch {
	case hasInPerson:
		parsed["is_online"] = false
	case hasVirtual:
		parsed["is_online"] = true
	}

	return parsed
}

// MatchWellKnownVenue returns the first registry entry whose pattern
// appears in title, description, or location (case-insensitive).
func MatchWellKnownVenue(registry []WellKnownVenue, title, description, location string) (uint, bool) {
	haystack := strings.ToLower(title + " " + description + " " + location)
	for _, v := range registry {
		if strings.Contains(haystack, strings.ToLower(v.NamePattern)) {
			return v.VenueID, true
		}
	}
	return 0, false
}
