package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"reflect"
	"time"
)

// EventType is the closed vocabulary for Event.EventType. Historical
// synonyms are migrated to these values at ingestion time (see
// NormalizeEventType below).
type EventType string

const (
	EventTypeTour       EventType = "tour"
	EventTypeExhibition EventType = "exhibition"
	EventTypeFestival   EventType = "festival"
	EventTypePhotowalk  EventType = "photowalk"
	EventTypeFilm       EventType = "film"
	EventTypeMusic      EventType = "music"
	EventTypeTalk       EventType = "talk"
	EventTypeWorkshop   EventType = "workshop"
	EventTypeGeneric    EventType = "event"
)

// legacyEventTypeAliases maps historical vocabulary onto the closed set.
// Resolves the Open Question in spec.md §9 about "talk" vs "lecture" vs
// "program".
var legacyEventTypeAliases = map[string]EventType{
	"lecture":      EventTypeTalk,
	"program":      EventTypeTalk,
	"performance":  EventTypeMusic,
	"concert":      EventTypeMusic,
	"show":         EventTypeMusic,
	"screening":    EventTypeFilm,
	"walking tour": EventTypeTour,
	"guided tour":  EventTypeTour,
}

// NormalizeEventType resolves a raw scraped string to the closed
// EventType vocabulary, falling back to EventTypeGeneric.
func NormalizeEventType(raw string) EventType {
	if et, ok := legacyEventTypeAliases[raw]; ok {
		return et
	}
	switch EventType(raw) {
	case EventTypeTour, EventTypeExhibition, EventTypeFestival, EventTypePhotowalk,
		EventTypeFilm, EventTypeMusic, EventTypeTalk, EventTypeWorkshop, EventTypeGeneric:
		return EventType(raw)
	default:
		return EventTypeGeneric
	}
}

// EventTypeExtension holds type-specific fields that do not warrant
// their own column. Stored as a single JSON column (additional_info)
// on Event; only the fields relevant to Event.EventType are populated.
type EventTypeExtension struct {
	// tour
	MeetingPoint string `json:"meeting_point,omitempty"`
	// exhibition
	Floor string `json:"floor,omitempty"`
	// festival
	Lineup []string `json:"lineup,omitempty"`
	// photowalk
	Route string `json:"route,omitempty"`
	// film
	RuntimeMinutes int    `json:"runtime_minutes,omitempty"`
	Rating         string `json:"rating,omitempty"`
	// music
	SetTimes []string `json:"set_times,omitempty"`
	// talk
	Speaker string `json:"speaker,omitempty"`
	// workshop
	MaterialsRequired []string `json:"materials_required,omitempty"`
}

// Scan implements sql.Scanner so EventTypeExtension can sit directly on
// the Event struct as a nullable JSON column.
func (e *EventTypeExtension) Scan(value any) error {
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
		return errors.New("models: unsupported type for EventTypeExtension.Scan")
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, e)
}

// Value implements driver.Valuer.
func (e EventTypeExtension) Value() (driver.Value, error) {
	if reflect.DeepEqual(e, EventTypeExtension{}) {
		return nil, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// FloatingTime is a wall-clock time with no attached offset. It is
// combined with a City's timezone only at render/export time.
type FloatingTime struct {
	Hour   int
	Minute int
}

func (t FloatingTime) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("15:04")
}

// Event is the central record. Exactly one of VenueID or CityID must be
// set; when VenueID is set, CityID is derived from the venue.
type Event struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	EventType EventType `gorm:"not null;type:text;index"`

	StartDate time.Time `gorm:"not null;index"`
	EndDate   *time.Time

	StartTime *FloatingTimeColumn `gorm:"type:text"`
	EndTime   *FloatingTimeColumn `gorm:"type:text"`

	Description string `gorm:"type:text"`
	URL         string `gorm:"type:text;index"`
	ImageURL    string `gorm:"type:text"`

	StartLocation string `gorm:"type:text"`
	EndLocation   string `gorm:"type:text"`

	IsRegistrationRequired bool
	RegistrationURL        string `gorm:"type:text"`
	IsOnline               bool
	IsBabyFriendly         bool
	IsPermanent            bool

	SourceURL string `gorm:"type:text"` // weak reference, not a foreign key

	VenueID *uint `gorm:"index"`
	Venue   *Venue
	CityID  *uint `gorm:"index"`
	City    *City

	TypeExtension EventTypeExtension `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Event) TableName() string {
	return "events"
}

// FloatingTimeColumn adapts FloatingTime for GORM column storage as
// "HH:MM" text, keeping the floating-time contract (no offset, no
// date) spec.md §4.3 requires.
type FloatingTimeColumn FloatingTime

func (t *FloatingTimeColumn) Scan(value any) error {
	if value == nil {
		return nil
	}
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return errors.New("models: unsupported type for FloatingTimeColumn.Scan")
	}
	if s == "" {
		return nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return err
	}
	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return nil
}

func (t FloatingTimeColumn) Value() (driver.Value, error) {
	return FloatingTime(t).String(), nil
}

// IsPastAsOf implements the §3 sweep lifecycle rule: an event is
// eligible for deletion when its end date (or start date if no end
// date) is strictly before the reference day, and it is not permanent.
func (e Event) IsPastAsOf(today time.Time) bool {
	if e.IsPermanent {
		return false
	}
	ref := e.StartDate
	if e.EndDate != nil {
		ref = *e.EndDate
	}
	return ref.Before(truncateToDay(today))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
