package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type SourceType string

const (
	SourceTypeWebsite    SourceType = "website"
	SourceTypeSocial     SourceType = "social"
	SourceTypeAggregator SourceType = "aggregator"
)

// StringSlice adapts []string for a single text column (comma-separated
// JSON array), matching the teacher's preference for embedding small
// grouped fields rather than a junction table for simple tag lists.
type StringSlice []string

func (s *StringSlice) Scan(value any) error {
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
		return errors.New("models: unsupported type for StringSlice.Scan")
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, s)
}

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Source tracks an external source of events, distinct from the
// scraped-from URL of any single Event (Events hold only a weak
// reference to a Source by URL; deleting a Source never touches its
// historical events).
type Source struct {
	ID     uint       `gorm:"primaryKey"`
	Name   string     `gorm:"not null"`
	Handle string     `gorm:"type:text"`
	Type   SourceType `gorm:"type:text;not null"`
	URL    string     `gorm:"type:text"`

	CoversMultipleCities bool
	CoveredCities        StringSlice `gorm:"type:text"`
	EventTypes           StringSlice `gorm:"type:text"`

	IsActive         bool `gorm:"default:true"`
	ReliabilityScore float64
	PostingFrequency *string `gorm:"type:text"`

	LastChecked     *time.Time
	LastEventFound  *time.Time
	EventsFoundCount int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Source) TableName() string {
	return "sources"
}
