package schema

import "gorm.io/gorm"

// ConsistencyReport lists rows whose foreign key points at nothing,
// the Go-native analogue of original_source's fix_city_id_consistency.py
// (which recreated cities from a JSON source of truth this repo has no
// equivalent for). Without that source of truth there is no "correct"
// id to repair to, so this is read-only: it surfaces orphans for an
// operator to resolve rather than guessing a fix.
type ConsistencyReport struct {
	OrphanedVenues []uint // venue id whose city_id has no matching city
	OrphanedEvents []uint // event id whose venue_id has no matching venue
}

// CheckConsistency runs the orphan scan. Safe to call on every
// startup alongside Evolve; both are read-mostly and non-destructive.
func CheckConsistency(db *gorm.DB) (ConsistencyReport, error) {
	var report ConsistencyReport

	if err := db.Raw(`
		SELECT v.id FROM venues v
		LEFT JOIN cities c ON c.id = v.city_id
		WHERE c.id IS NULL
	`).Scan(&report.OrphanedVenues).Error; err != nil {
		return report, err
	}

	if err := db.Raw(`
		SELECT e.id FROM events e
		WHERE e.venue_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM venues v WHERE v.id = e.venue_id)
	`).Scan(&report.OrphanedEvents).Error; err != nil {
		return report, err
	}

	return report, nil
}
