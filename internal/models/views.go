package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CityView is the read-endpoint projection of City (spec.md §6.1).
type CityView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	State    *string `json:"state,omitempty"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

func (c City) ToView() CityView {
	return CityView{ID: c.ID, Name: c.Name, State: c.State, Country: c.Country, Timezone: c.Timezone}
}

// VenueView is the read-endpoint projection of Venue.
type VenueView struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Type         VenueType  `json:"type"`
	Address      *string    `json:"address,omitempty"`
	Lat          *float64   `json:"lat,omitempty"`
	Lon          *float64   `json:"lon,omitempty"`
	Website      *string    `json:"website,omitempty"`
	TicketingURL *string    `json:"ticketing_url,omitempty"`
	SocialURLs   SocialURLs `json:"social_urls"`
	Hours        *string    `json:"hours,omitempty"`
	Contact      *string    `json:"contact,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CityID       uint       `json:"city_id"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (v Venue) ToView() VenueView {
	return VenueView{
		ID: v.ID, Name: v.Name, Type: v.Type, Address: v.Address, Lat: v.Lat, Lon: v.Lon,
		Website: v.Website, TicketingURL: v.TicketingURL, SocialURLs: v.SocialURLs,
		Hours: v.Hours, Contact: v.Contact, Description: v.Description,
		CityID: v.CityID, UpdatedAt: v.UpdatedAt,
	}
}

// SourceView is the read-endpoint projection of Source.
type SourceView struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Handle     string     `json:"handle,omitempty"`
	Type       SourceType `json:"type"`
	URL        string     `json:"url,omitempty"`
	EventTypes StringSlice `json:"event_types,omitempty"`
	IsActive   bool       `json:"is_active"`
}

func (s Source) ToView() SourceView {
	return SourceView{
		ID: s.ID, Name: s.Name, Handle: s.Handle, Type: s.Type, URL: s.URL,
		EventTypes: s.EventTypes, IsActive: s.IsActive,
	}
}

// EventView is the read-endpoint projection of Event (spec.md §6.1),
// enriched with the venue/city attributes that justify joining rather
// than leaving the client to do a second round trip.
type EventView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	EventType EventType `json:"event_type"`

	StartDate time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`

	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	StartLocation string `json:"start_location,omitempty"`
	EndLocation   string `json:"end_location,omitempty"`

	IsRegistrationRequired bool   `json:"is_registration_required"`
	RegistrationURL        string `json:"registration_url,omitempty"`
	IsOnline                bool   `json:"is_online"`
	IsBabyFriendly          bool   `json:"is_baby_friendly"`
	IsPermanent             bool   `json:"is_permanent"`

	VenueID *uint `json:"venue_id,omitempty"`
	CityID  *uint `json:"city_id,omitempty"`

	TypeExtension EventTypeExtension `json:"type_extension"`

	// Derived, not stored on Event itself (spec.md §6.1).
	VenueName    string `json:"venue_name,omitempty"`
	CityName     string `json:"city_name,omitempty"`
	CityTimezone string `json:"city_timezone,omitempty"`
	MapsLink     string `json:"maps_link,omitempty"`
}

// ToView derives venue_name/city_name/city_timezone/maps_link from the
// preloaded Venue/City associations. imageProxyBase, when non-empty, is
// used to rewrite ImageURL through the image proxy for blocked hosts.
func (e Event) ToView(blockedHosts []string, imageProxyBase string) EventView {
	v := EventView{
		ID: e.ID, Title: e.Title, EventType: e.EventType,
		StartDate: e.StartDate, EndDate: e.EndDate,
		Description: e.Description, URL: e.URL, ImageURL: e.ImageURL,
		StartLocation: e.StartLocation, EndLocation: e.EndLocation,
		IsRegistrationRequired: e.IsRegistrationRequired, RegistrationURL: e.RegistrationURL,
		IsOnline: e.IsOnline, IsBabyFriendly: e.IsBabyFriendly, IsPermanent: e.IsPermanent,
		VenueID: e.VenueID, CityID: e.CityID, TypeExtension: e.TypeExtension,
	}
	if e.StartTime != nil {
		s := FloatingTime(*e.StartTime).String()
		v.StartTime = &s
	}
	if e.EndTime != nil {
		s := FloatingTime(*e.EndTime).String()
		v.EndTime = &s
	}

	city := e.City
	if e.Venue != nil {
		v.VenueName = e.Venue.Name
		if city == nil {
			city = &e.Venue.City
		}
		v.MapsLink = mapsLink(e.Venue.Name, e.Venue.Lat, e.Venue.Lon, city)
	}
	if city != nil {
		v.CityName = city.Name
		v.CityTimezone = city.Timezone
	}

	if v.ImageURL != "" && isBlockedHotlink(v.ImageURL, blockedHosts) && imageProxyBase != "" {
		v.ImageURL = imageProxyBase + "?url=" + url.QueryEscape(v.ImageURL)
	}

	return v
}

func mapsLink(venueName string, lat, lon *float64, city *City) string {
	if lat != nil && lon != nil {
		return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f,%f", *lat, *lon)
	}
	if venueName == "" {
		return ""
	}
	query := venueName
	if city != nil {
		query = fmt.Sprintf("%s, %s", venueName, city.Name)
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func isBlockedHotlink(imageURL string, blockedHosts []string) bool {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, blocked := range blockedHosts {
		if host == blocked {
			return true
		}
	}
	return false
}
