// Command seed populates cities and venues from data/cities.yaml and
// data/venues.yaml, grounded on the teacher's seed command (YAML ->
// struct -> gorm upsert) but pointed at this domain's two base tables
// instead of venues/bands/shows.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"culturefeed-backend/db"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/models"
)

type citySeed struct {
	Name     string `yaml:"name"`
	State    string `yaml:"state"`
	Country  string `yaml:"country"`
	Timezone string `yaml:"timezone"`
}

type venueSeed struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	City    string `yaml:"city"`
	Address string `yaml:"address"`
	Website string `yaml:"website"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	conn := db.GetDB()

	fmt.Println("Seeding cities...")
	cities := loadCities("data/cities.yaml")
	cityIDByName := make(map[string]uint, len(cities))
	var citiesCreated int64
	for _, c := range cities {
		var state *string
		if c.State != "" {
			state = &c.State
		}
		city := models.City{Name: c.Name, State: state, Country: c.Country, Timezone: c.Timezone}

		result := conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "state"}, {Name: "country"}},
			DoNothing: true,
		}).Create(&city)
		if result.Error != nil {
			log.Printf("Warning: failed to create city %s: %v", c.Name, result.Error)
			continue
		}
		citiesCreated += result.RowsAffected

		var existing models.City
		if err := conn.Where("name = ?", c.Name).First(&existing).Error; err != nil {
			log.Printf("Warning: could not resolve id for city %s: %v", c.Name, err)
			continue
		}
		cityIDByName[c.Name] = existing.ID
	}
	fmt.Printf("processed %d cities (%d created)\n", len(cities), citiesCreated)

	fmt.Println("Seeding venues...")
	venues := loadVenues("data/venues.yaml")
	var venuesCreated int64
	for _, v := range venues {
		cityID, ok := cityIDByName[v.City]
		if !ok {
			log.Printf("Warning: skipping venue %s, unknown city %s", v.Name, v.City)
			continue
		}
		var address, website *string
		if v.Address != "" {
			address = &v.Address
		}
		if v.Website != "" {
			website = &v.Website
		}
		venue := models.Venue{
			Name: v.Name, Type: models.VenueType(v.Type), CityID: cityID,
			Address: address, Website: website,
		}

		var existing models.Venue
		err := conn.Where("LOWER(name) = LOWER(?) AND city_id = ?", v.Name, cityID).First(&existing).Error
		if err == nil {
			continue
		}
		if err := conn.Create(&venue).Error; err != nil {
			log.Printf("Warning: failed to create venue %s: %v", v.Name, err)
			continue
		}
		venuesCreated++
	}
	fmt.Printf("processed %d venues (%d created)\n", len(venues), venuesCreated)

	fmt.Println("Database seeding completed.")
}

func loadCities(path string) map[string]citySeed {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	var cities map[string]citySeed
	if err := yaml.Unmarshal(data, &cities); err != nil {
		log.Fatalf("Failed to unmarshal %s: %v", path, err)
	}
	return cities
}

func loadVenues(path string) map[string]venueSeed {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	var venues map[string]venueSeed
	if err := yaml.Unmarshal(data, &venues); err != nil {
		log.Fatalf("Failed to unmarshal %s: %v", path, err)
	}
	return venues
}
