package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcwait "github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"culturefeed-backend/internal/models"
)

type SweepIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	ctx       context.Context
	city      models.City
}

func (s *SweepIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := postgres.Run(s.ctx, "postgres:18",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		tcwait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(120*time.Second),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db
	s.Require().NoError(db.AutoMigrate(&models.City{}, &models.Venue{}, &models.Event{}))
}

func (s *SweepIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *SweepIntegrationTestSuite) SetupTest() {
	s.city = models.City{Name: "Berlin", Country: "Germany", Timezone: "Europe/Berlin"}
	s.Require().NoError(s.db.Create(&s.city).Error)
}

func (s *SweepIntegrationTestSuite) TearDownTest() {
	s.db.Exec("DELETE FROM events")
	s.db.Exec("DELETE FROM cities")
}

func TestSweepIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SweepIntegrationTestSuite))
}

func (s *SweepIntegrationTestSuite) TestClearPastEvents() {
	past := func(endDate *time.Time, startDate time.Time, permanent bool, title string) models.Event {
		return models.Event{
			Title: title, EventType: models.EventTypeTalk,
			StartDate: startDate, EndDate: endDate, IsPermanent: permanent,
			CityID: &s.city.ID,
		}
	}

	end := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	a := past(&end, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), false, "A")
	b := past(nil, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), false, "B")
	c := past(nil, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true, "C")
	future := past(nil, time.Now().UTC().AddDate(0, 0, 30), false, "Future")

	for _, e := range []models.Event{a, b, c, future} {
		s.Require().NoError(s.db.Create(&e).Error)
	}

	deleted, err := ClearPastEvents(s.db)
	s.Require().NoError(err)
	s.Equal(int64(2), deleted)

	var remaining []models.Event
	s.Require().NoError(s.db.Find(&remaining).Error)
	titles := make(map[string]bool, len(remaining))
	for _, e := range remaining {
		titles[e.Title] = true
	}
	s.False(titles["A"], "event past its end_date must be swept")
	s.False(titles["B"], "event past its start_date with no end_date must be swept")
	s.True(titles["Future"], "future event must never be swept")
	s.True(titles["C"], "permanent event must never be swept")
}
