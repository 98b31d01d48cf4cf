package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type VenueType string

const (
	VenueTypeMuseum    VenueType = "museum"
	VenueTypeGallery   VenueType = "gallery"
	VenueTypeConcert   VenueType = "concert_hall"
	VenueTypeTheater   VenueType = "theater"
	VenueTypeEmbassy   VenueType = "embassy"
	VenueTypeCommunity VenueType = "community_center"
	VenueTypeOther     VenueType = "other"
)

// AdditionalInfo is Venue's free-form structured blob. EventPaths maps
// an event_type (or "events") to the URL on the venue's site that
// lists that kind of program, consulted by the site extractor (C7)
// before it falls back to heuristic paths.
type AdditionalInfo struct {
	EventPaths map[string]string `json:"event_paths,omitempty"`
}

func (a *AdditionalInfo) Scan(value any) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("models: unsupported type for AdditionalInfo.Scan")
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, a)
}

func (a AdditionalInfo) Value() (driver.Value, error) {
	if a.EventPaths == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Venue belongs to exactly one City. The DB index makes (name, city_id)
// unique as stored (case-sensitive); AddVenueHandler also rejects a
// name that matches an existing venue of the city ignoring case.
// Deleting a Venue cascades to its Events (enforced at the DB level via
// a foreign key ON DELETE CASCADE set up in internal/schema).
type Venue struct {
	ID      uint      `gorm:"primaryKey"`
	Name    string    `gorm:"not null;index:idx_venue_identity,unique"`
	Type    VenueType `gorm:"type:text;not null"`
	Address *string   `gorm:"type:text"`
	Lat     *float64
	Lon     *float64

	Website      *string `gorm:"type:text"`
	TicketingURL *string `gorm:"type:text"`
	SocialURLs   SocialURLs `gorm:"embedded"`

	Hours       *string `gorm:"type:text"`
	Contact     *string `gorm:"type:text"`
	Description *string `gorm:"type:text"`

	// SocialVerified is stored only: no handler sets it, and the
	// image-proxy rewrite in Event.ToView does not consult it.
	SocialVerified bool

	CityID uint `gorm:"not null;index:idx_venue_identity,unique"`
	City   City

	AdditionalInfo AdditionalInfo `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Events []Event `gorm:"foreignKey:VenueID"`
}

func (Venue) TableName() string {
	return "venues"
}

// permanentlyClosedSynonyms is consulted by IsClosed, grounded on the
// original's update_venue_closure_status.py keyword list.
var permanentlyClosedSynonyms = []string{
	"permanently closed",
	"closed permanently",
	"has closed",
	"no longer open",
	"ceased operations",
}

// IsClosed reports whether Hours or Description mentions a closure
// synonym, per §6.1's "venues ... are omitted" read-endpoint rule.
func (v Venue) IsClosed() bool {
	for _, field := range []*string{v.Hours, v.Description} {
		if field == nil {
			continue
		}
		lower := strings.ToLower(*field)
		for _, phrase := range permanentlyClosedSynonyms {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}
