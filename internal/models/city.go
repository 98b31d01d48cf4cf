package models

import "time"

// City is a canonical locale that owns Venues and, optionally, venue-less Events.
type City struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;index:idx_city_identity,unique"`
	State     *string   `gorm:"index:idx_city_identity,unique"`
	Country   string    `gorm:"not null;index:idx_city_identity,unique"`
	Timezone  string    `gorm:"not null"` // IANA zone, e.g. "America/New_York"
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Venues []Venue `gorm:"foreignKey:CityID"`
	Events []Event `gorm:"foreignKey:CityID"`
}

func (City) TableName() string {
	return "cities"
}
