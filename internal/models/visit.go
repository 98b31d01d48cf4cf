package models

import "time"

// Visit is an analytics trail row, outside the core pipeline. Its table
// is migrated by internal/schema; no handler in this repository writes
// Visit rows.
type Visit struct {
	ID        uint    `gorm:"primaryKey"`
	CityID    *uint   `gorm:"index"`
	IP        string  `gorm:"type:text"`
	UserAgent string  `gorm:"type:text"`
	Referrer  *string `gorm:"type:text"`
	Path      string  `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

func (Visit) TableName() string {
	return "visits"
}
