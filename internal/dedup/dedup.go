// Package dedup finds the existing Event a candidate should merge
// into, using the precedence-ordered match strategies of spec.md §4.4.
// Grounded on the teacher's checkHeadlinerDuplicate GORM Joins/Where
// chain in internal/services/discovery.go.
package dedup

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
)

// Candidate is the subset of candidate-event fields the match
// strategies need.
type Candidate struct {
	Title     string
	StartDate time.Time
	VenueID   *uint
	CityID    *uint
	URL       string
	EventType models.EventType
}

// Index runs the four ordered match strategies against a shared
// *gorm.DB. Match wins on the first strategy producing a hit; ties
// within a strategy break on lowest id (ORDER BY id ASC, LIMIT 1).
type Index struct {
	db *gorm.DB
}

func NewIndex(db *gorm.DB) *Index {
	return &Index{db: db}
}

// Strategy names, reported for observability and the testable-property
// in spec.md §8 ("the match strategy that fires is the highest-
// precedence one with a match").
const (
	StrategyURL            = "url_match"
	StrategyExhibitionSite = "exhibition_shared_website"
	StrategyTitleVenueDate = "title_venue_date"
	StrategyCityFallback   = "city_fallback"
)

// Find returns the matched Event and the strategy that produced it, or
// (nil, "") if no strategy matched.
func (idx *Index) Find(c Candidate) (*models.Event, string) {
	if e := idx.matchByURL(c); e != nil {
		return e, StrategyURL
	}
	if e := idx.matchExhibitionSharedWebsite(c); e != nil {
		return e, StrategyExhibitionSite
	}
	if e := idx.matchTitleVenueDate(c); e != nil {
		return e, StrategyTitleVenueDate
	}
	if e := idx.matchCityFallback(c); e != nil {
		return e, StrategyCityFallback
	}
	return nil, ""
}

func (idx *Index) matchByURL(c Candidate) *models.Event {
	if c.URL == "" || c.CityID == nil {
		return nil
	}
	withoutSlash := strings.TrimSuffix(c.URL, "/")
	var e models.Event
	err := idx.db.
		Where("url IN ?", []string{c.URL, withoutSlash}).
		Where("event_type = ?", c.EventType).
		Where("city_id = ?", *c.CityID).
		Where("start_date = ?", c.StartDate).
		Order("id ASC").
		First(&e).Error
	if err != nil {
		return nil
	}
	return &e
}

func (idx *Index) matchExhibitionSharedWebsite(c Candidate) *models.Event {
	if c.EventType != models.EventTypeExhibition || c.VenueID == nil || c.CityID == nil {
		return nil
	}
	var candidateVenue models.Venue
	if err := idx.db.First(&candidateVenue, *c.VenueID).Error; err != nil || candidateVenue.Website == nil {
		return nil
	}
	var e models.Event
	err := idx.db.
		Joins("JOIN venues ON venues.id = events.venue_id").
		Where("events.event_type = ?", models.EventTypeExhibition).
		Where("events.title = ?", c.Title).
		Where("venues.website = ?", *candidateVenue.Website).
		Where("events.city_id = ?", *c.CityID).
		Where("events.start_date = ?", c.StartDate).
		Order("events.id ASC").
		First(&e).Error
	if err != nil {
		return nil
	}
	return &e
}

func (idx *Index) matchTitleVenueDate(c Candidate) *models.Event {
	if c.VenueID == nil || c.CityID == nil {
		return nil
	}
	var e models.Event
	err := idx.db.
		Where("title = ?", c.Title).
		Where("venue_id = ?", *c.VenueID).
		Where("city_id = ?", *c.CityID).
		Where("start_date = ?", c.StartDate).
		Order("id ASC").
		First(&e).Error
	if err != nil {
		return nil
	}
	return &e
}

func (idx *Index) matchCityFallback(c Candidate) *models.Event {
	if c.VenueID != nil || c.CityID == nil {
		return nil
	}
	var e models.Event
	err := idx.db.
		Where("title = ?", c.Title).
		Where("venue_id IS NULL").
		Where("city_id = ?", *c.CityID).
		Where("start_date = ?", c.StartDate).
		Order("id ASC").
		First(&e).Error
	if err != nil {
		return nil
	}
	return &e
}
