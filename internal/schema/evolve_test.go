package schema

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

type SchemaIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	ctx       context.Context
}

func (s *SchemaIntegrationTestSuite) SetupSuite() {
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
}

func (s *SchemaIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestSchemaIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SchemaIntegrationTestSuite))
}

func (s *SchemaIntegrationTestSuite) TestEvolveCreatesTablesAndReportsAddedColumns() {
	report := Evolve(s.db)
	s.Empty(report.Errors)
	s.NotEmpty(report.Added, "a fresh database should report every column as newly added")

	var count int64
	s.Require().NoError(s.db.Raw(`SELECT count(*) FROM information_schema.tables WHERE table_name = 'events'`).Scan(&count).Error)
	s.Equal(int64(1), count)

	// Re-running against an already-migrated schema adds nothing new.
	second := Evolve(s.db)
	s.Empty(second.Errors)
	s.Empty(second.Added)
}

func (s *SchemaIntegrationTestSuite) TestCheckConsistencyFindsOrphanedVenue() {
	s.Require().NoError(s.db.AutoMigrate(&models.City{}, &models.Venue{}, &models.Source{}, &models.Event{}, &models.Visit{}))
	defer func() {
		s.db.Exec("DELETE FROM events")
		s.db.Exec("DELETE FROM venues")
		s.db.Exec("DELETE FROM cities")
	}()

	city := models.City{Name: "Lisbon", Country: "Portugal", Timezone: "Europe/Lisbon"}
	s.Require().NoError(s.db.Create(&city).Error)
	venue := models.Venue{Name: "Gulbenkian", Type: models.VenueTypeMuseum, CityID: city.ID}
	s.Require().NoError(s.db.Create(&venue).Error)

	// Orphan the venue by deleting its city out from under it, bypassing
	// the FK constraint with a raw statement the way a bad import would.
	s.Require().NoError(s.db.Exec(`ALTER TABLE venues DROP CONSTRAINT IF EXISTS fk_venues_city`).Error)
	s.Require().NoError(s.db.Exec(`DELETE FROM cities WHERE id = ?`, city.ID).Error)

	report, err := CheckConsistency(s.db)
	s.Require().NoError(err)
	s.Contains(report.OrphanedVenues, venue.ID)
}
