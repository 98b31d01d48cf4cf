// Package quota enforces per-venue ceilings on exhibitions and events
// during a single ingestion batch. In-memory counters, same
// mutex-guarded map idiom as internal/geo's cache.
package quota

import (
	"sync"

	"culturefeed-backend/internal/errors"
)

const (
	DefaultMaxExhibitionsPerVenue = 5
	DefaultMaxEventsPerVenue      = 10
)

// Governor tracks per-venue counters for a single dispatch batch. A
// Governor must not be reused across batches.
type Governor struct {
	mu                     sync.Mutex
	maxExhibitionsPerVenue int
	maxEventsPerVenue      int

	exhibitionCount map[uint]int
	eventCount      map[uint]int

	// websiteGroup maps a shared website to the set of venue ids that
	// share it, resolved once per batch so exhibition ceilings apply
	// to the union (spec.md §4.5).
	websiteGroup map[string][]uint
}

func NewGovernor(maxExhibitionsPerVenue, maxEventsPerVenue int) *Governor {
	if maxExhibitionsPerVenue <= 0 {
		maxExhibitionsPerVenue = DefaultMaxExhibitionsPerVenue
	}
	if maxEventsPerVenue <= 0 {
		maxEventsPerVenue = DefaultMaxEventsPerVenue
	}
	return &Governor{
		maxExhibitionsPerVenue: maxExhibitionsPerVenue,
		maxEventsPerVenue:      maxEventsPerVenue,
		exhibitionCount:        make(map[uint]int),
		eventCount:             make(map[uint]int),
		websiteGroup:           make(map[string][]uint),
	}
}

// RegisterVenueWebsite records that venueID is reachable through
// website, building the union groups the exhibition ceiling is
// enforced against. Call once per distinct venue before admitting any
// candidates for it.
func (g *Governor) RegisterVenueWebsite(venueID uint, website string) {
	if website == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range g.websiteGroup[website] {
		if id == venueID {
			return
		}
	}
	g.websiteGroup[website] = append(g.websiteGroup[website], venueID)
}

func (g *Governor) groupTotal(venueID uint, website string) int {
	if website == "" {
		return g.exhibitionCount[venueID]
	}
	total := 0
	seen := map[uint]bool{}
	for _, id := range g.websiteGroup[website] {
		if !seen[id] {
			seen[id] = true
			total += g.exhibitionCount[id]
		}
	}
	return total
}

// AdmitExhibition checks and, if admitted, increments the exhibition
// counter for venueID (enforced on the union of venues sharing
// website, if any).
func (g *Governor) AdmitExhibition(venueID uint, website string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.groupTotal(venueID, website) >= g.maxExhibitionsPerVenue {
		return errors.NewQuotaExceeded(venueID, "exhibition", g.maxExhibitionsPerVenue)
	}
	g.exhibitionCount[venueID]++
	return nil
}

// AdmitEvent checks and, if admitted, increments the non-exhibition
// event counter for venueID.
func (g *Governor) AdmitEvent(venueID uint) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.eventCount[venueID] >= g.maxEventsPerVenue {
		return errors.NewQuotaExceeded(venueID, "event", g.maxEventsPerVenue)
	}
	g.eventCount[venueID]++
	return nil
}
