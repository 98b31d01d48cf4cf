package site

import (
	"strings"

	"culturefeed-backend/internal/models"
)

// heuristicPaths are appended to venue.Website when AdditionalInfo has no
// matching event_paths entry (spec.md §4.7 step 1).
var heuristicPaths = []string{"/events", "/whatson", "/calendar", "/exhibitions"}

// CandidateURLs resolves the ordered list of URLs to try for a venue,
// preferring an explicit AdditionalInfo.EventPaths entry keyed by
// event_type (or "events") before falling back to the heuristic list.
func CandidateURLs(venue models.Venue, eventType models.EventType) []string {
	if venue.Website == nil || *venue.Website == "" {
		return nil
	}
	base := strings.TrimRight(*venue.Website, "/")

	if path, ok := venue.AdditionalInfo.EventPaths[string(eventType)]; ok && path != "" {
		return []string{joinPath(base, path)}
	}
	if path, ok := venue.AdditionalInfo.EventPaths["events"]; ok && path != "" {
		return []string{joinPath(base, path)}
	}

	urls := make([]string, 0, len(heuristicPaths)+1)
	urls = append(urls, base)
	for _, p := range heuristicPaths {
		urls = append(urls, base+p)
	}
	return urls
}

func joinPath(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
