package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcwait "github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/ingest"
	"culturefeed-backend/internal/models"
)

const eventPageHTML = `<html><body>
<script type="application/ld+json">
{"@type":"Event","name":"Members Night","startDate":"2026-04-10","location":{"name":"Main Hall"}}
</script>
</body></html>`

type DispatcherIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	ctx       context.Context
	city      models.City
	server    *httptest.Server
}

func (s *DispatcherIntegrationTestSuite) SetupSuite() {
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
	s.Require().NoError(db.AutoMigrate(&models.City{}, &models.Venue{}, &models.Source{}, &models.Event{}))
}

func (s *DispatcherIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *DispatcherIntegrationTestSuite) SetupTest() {
	s.city = models.City{Name: "Washington", Country: "United States", Timezone: "America/New_York"}
	s.Require().NoError(s.db.Create(&s.city).Error)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPageHTML))
	}))
}

func (s *DispatcherIntegrationTestSuite) TearDownTest() {
	s.server.Close()
	s.db.Exec("DELETE FROM events")
	s.db.Exec("DELETE FROM venues")
	s.db.Exec("DELETE FROM sources")
	s.db.Exec("DELETE FROM cities")
}

func TestDispatcherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherIntegrationTestSuite))
}

func (s *DispatcherIntegrationTestSuite) newDispatcher() *Dispatcher {
	scraper := site.New(site.WithHTTPClient(s.server.Client()))
	engine := ingest.NewEngine(s.db, ingest.DefaultBatchSize)
	return NewDispatcher(s.db, scraper, nil, engine)
}

func (s *DispatcherIntegrationTestSuite) TestDispatchRejectsEmptyRequest() {
	d := s.newDispatcher()
	events := drain(d.Dispatch(s.ctx, Request{TimeRange: extract.TimeRangeAll}))
	s.Require().NotEmpty(events)
	s.Equal(ProgressTypeError, events[0].Type)
}

func (s *DispatcherIntegrationTestSuite) TestDispatchScrapesAndPersistsOneVenue() {
	website := s.server.URL
	venue := models.Venue{Name: "NGA", Type: models.VenueTypeMuseum, CityID: s.city.ID, Website: &website}
	s.Require().NoError(s.db.Create(&venue).Error)

	d := s.newDispatcher()
	events := drain(d.Dispatch(s.ctx, Request{
		CityID:                 s.city.ID,
		TimeRange:              extract.TimeRangeAll,
		VenueIDs:               []uint{venue.ID},
		MaxExhibitionsPerVenue: 5,
		MaxEventsPerVenue:      10,
	}))

	var persisted []ProgressEvent
	var complete *ProgressEvent
	for _, e := range events {
		if e.Type == ProgressTypeEvent {
			persisted = append(persisted, e)
		}
		if e.Type == ProgressTypeComplete {
			ev := e
			complete = &ev
		}
	}
	s.Require().Len(persisted, 1)
	s.Equal("Members Night", persisted[0].Event.Title)
	s.Require().NotNil(complete)
	s.Equal(1, complete.TotalEvents)

	var count int64
	s.db.Model(&models.Event{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *DispatcherIntegrationTestSuite) TestDispatchIsolatesVenueFailure() {
	badWebsite := "http://127.0.0.1:1" // connection refused
	goodWebsite := s.server.URL
	bad := models.Venue{Name: "Broken Venue", Type: models.VenueTypeOther, CityID: s.city.ID, Website: &badWebsite}
	good := models.Venue{Name: "NGA", Type: models.VenueTypeMuseum, CityID: s.city.ID, Website: &goodWebsite}
	s.Require().NoError(s.db.Create(&bad).Error)
	s.Require().NoError(s.db.Create(&good).Error)

	d := s.newDispatcher()
	events := drain(d.Dispatch(s.ctx, Request{
		CityID:                 s.city.ID,
		TimeRange:              extract.TimeRangeAll,
		VenueIDs:               []uint{bad.ID, good.ID},
		MaxExhibitionsPerVenue: 5,
		MaxEventsPerVenue:      10,
	}))

	var sawError, sawEvent, sawComplete bool
	for _, e := range events {
		switch e.Type {
		case ProgressTypeError:
			sawError = true
		case ProgressTypeEvent:
			sawEvent = true
		case ProgressTypeComplete:
			sawComplete = true
		}
	}
	s.True(sawError, "broken venue should produce an error record")
	s.True(sawEvent, "the healthy venue must still be processed")
	s.True(sawComplete, "dispatch must still reach completion")
}

func drain(ch <-chan ProgressEvent) []ProgressEvent {
	var out []ProgressEvent
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}
