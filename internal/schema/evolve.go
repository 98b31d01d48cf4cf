// Package schema is the C12 Schema Evolver: at startup it brings the
// live store's columns in line with the current model definitions,
// additively only, and reports what changed. Ported from the
// information_schema-diff approach in original_source's
// migrate_event_schema.py/schema_validator.py, built on top of GORM's
// own non-destructive AutoMigrate rather than hand-written ALTER TABLE
// statements.
package schema

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
)

// migratedModels lists every model AutoMigrate is responsible for, in
// dependency order (cities before venues/events, which reference them).
var migratedModels = []any{
	&models.City{},
	&models.Venue{},
	&models.Source{},
	&models.Event{},
	&models.Visit{},
}

// Report is {added, errors} from spec.md §4.12.
type Report struct {
	Added  []string
	Errors []string
}

type columnSet map[string]bool

// Evolve runs AutoMigrate model by model so a failure on one table
// never blocks the others, diffing information_schema.columns before
// and after to discover what AutoMigrate actually added. Never drops a
// column or narrows a type; that's AutoMigrate's own guarantee.
func Evolve(db *gorm.DB) Report {
	var report Report

	tables := make([]string, len(migratedModels))
	before := make(map[string]columnSet, len(migratedModels))
	for i, m := range migratedModels {
		table, err := tableName(db, m)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("resolve table name: %v", err))
			continue
		}
		tables[i] = table
		cols, err := snapshotColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("snapshot %s: %v", table, err))
			continue
		}
		before[table] = cols
	}

	for i, m := range migratedModels {
		if err := db.AutoMigrate(m); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("migrate %s: %v", tables[i], err))
		}
	}

	for _, table := range tables {
		if table == "" {
			continue
		}
		after, err := snapshotColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("re-snapshot %s: %v", table, err))
			continue
		}
		for col := range after {
			if !before[table][col] {
				report.Added = append(report.Added, table+"."+col)
			}
		}
	}

	return report
}

// foreignKeys sets up the cascades GORM's implicit FK inference
// doesn't give us without an explicit `foreignKey`/`constraint` tag:
// deleting a City cascades to its Venues and venue-less Events;
// deleting a Venue cascades to its Events (models/venue.go's doc
// comment promises this).
var foreignKeys = []string{
	`ALTER TABLE venues ADD CONSTRAINT fk_venues_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE`,
	`ALTER TABLE events ADD CONSTRAINT fk_events_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE`,
	`ALTER TABLE events ADD CONSTRAINT fk_events_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE`,
}

// ensureForeignKeys adds each cascade constraint if it isn't already
// present; Postgres has no "ADD CONSTRAINT IF NOT EXISTS", so existence
// is checked via pg_constraint first.
func ensureForeignKeys(db *gorm.DB) []string {
	var errs []string
	for _, stmt := range foreignKeys {
		var exists int64
		name := constraintName(stmt)
		if err := db.Raw(`SELECT count(*) FROM pg_constraint WHERE conname = ?`, name).Scan(&exists).Error; err != nil {
			errs = append(errs, fmt.Sprintf("check constraint %s: %v", name, err))
			continue
		}
		if exists > 0 {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			errs = append(errs, fmt.Sprintf("add constraint %s: %v", name, err))
		}
	}
	return errs
}

func constraintName(stmt string) string {
	const marker = "ADD CONSTRAINT "
	idx := strings.Index(stmt, marker)
	if idx < 0 {
		return ""
	}
	rest := stmt[idx+len(marker):]
	if end := strings.Index(rest, " "); end >= 0 {
		return rest[:end]
	}
	return rest
}

// EvolveAndLog runs Evolve and logs the result; failures never block
// startup (spec.md §4.12).
func EvolveAndLog(ctx context.Context, db *gorm.DB) Report {
	report := Evolve(db)
	report.Errors = append(report.Errors, ensureForeignKeys(db)...)
	if len(report.Added) > 0 {
		logger.EventInfo(ctx, "schema: columns added", "columns", report.Added)
	}
	for _, msg := range report.Errors {
		logger.EventWarn(ctx, "schema: evolve error", "error", msg)
	}
	return report
}

func snapshotColumns(db *gorm.DB, table string) (columnSet, error) {
	var names []string
	err := db.Raw(`SELECT column_name FROM information_schema.columns WHERE table_name = ?`, table).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	set := make(columnSet, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

func tableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Table, nil
}
