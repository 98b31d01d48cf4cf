package ingest

import (
	"context"

	"gorm.io/gorm"

	"culturefeed-backend/internal/dedup"
	"culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
	"culturefeed-backend/internal/quota"
)

const DefaultBatchSize = 5

// Outcome tallies a batch's results per spec.md §4.6: created + updated
// + skipped must equal the batch size.
type Outcome struct {
	Created int
	Updated int
	Skipped int
}

func (o *Outcome) Add(other Outcome) {
	o.Created += other.Created
	o.Updated += other.Updated
	o.Skipped += other.Skipped
}

// Engine is the C6 Merge/Persist Engine. One Engine is shared by every
// dispatch request; each Ingest call receives the Governor of the
// request it serves.
type Engine struct {
	db        *gorm.DB
	batchSize int
}

func NewEngine(db *gorm.DB, batchSize int) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Engine{db: db, batchSize: batchSize}
}

// Persisted is emitted for every candidate that results in a create or
// update, so the dispatcher can push it onto the progress channel.
type Persisted struct {
	Event   models.Event
	Created bool
}

// Ingest runs candidates (already grouped by venue_id by the caller)
// through reject -> baby-friendly -> dedup -> quota -> merge/insert,
// committing every batchSize candidates in its own transaction. A
// transaction failure rolls back only that batch and the engine
// continues with the rest.
func (e *Engine) Ingest(ctx context.Context, candidates []Candidate, governor *quota.Governor, onPersist func(Persisted)) (Outcome, error) {
	var total Outcome
	log := logger.FromContext(ctx)

	for start := 0; start < len(candidates); start += e.batchSize {
		end := min(start+e.batchSize, len(candidates))
		batch := candidates[start:end]

		var batchOutcome Outcome
		err := e.db.Transaction(func(tx *gorm.DB) error {
			idx := dedup.NewIndex(tx)
			for _, c := range batch {
				persisted, created, skip, storeErr := e.ingestOne(tx, idx, governor, c)
				if storeErr != nil {
					// A genuine store failure (constraint violation, deadlock)
					// rolls back everything this batch has written so far,
					// per spec.md §4.6/§7 StoreError.
					return storeErr
				}
				switch {
				case skip:
					batchOutcome.Skipped++
				case created:
					batchOutcome.Created++
					if onPersist != nil {
						onPersist(Persisted{Event: *persisted, Created: true})
					}
				default:
					batchOutcome.Updated++
					if onPersist != nil {
						onPersist(Persisted{Event: *persisted, Created: false})
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Error("ingest: batch failed, rolling back", "error", err)
			total.Skipped += len(batch)
			continue
		}
		total.Add(batchOutcome)
	}
	return total, nil
}

// ingestOne applies one candidate within an open transaction. Returns
// (event, created, skip, err). Rejections spec.md §4.6 treats as
// ordinary "skip" outcomes (category heading, non-English, quota
// denial) never set err. A dedup match is always returned as an
// update, whether or not the merge changed any field.
// Only a genuine store failure (tx.Save/tx.Create returning an error —
// constraint violation, deadlock) sets err, which the caller propagates
// to roll back the whole batch per spec.md §7's StoreError row.
func (e *Engine) ingestOne(tx *gorm.DB, idx *dedup.Index, governor *quota.Governor, c Candidate) (*models.Event, bool, bool, error) {
	if normalize.IsCategoryHeading(c.Title) {
		return nil, false, true, nil
	}
	if c.Language != "" && c.Language != "English" {
		return nil, false, true, nil
	}

	isBabyFriendly := normalize.IsBabyFriendly(c.Title, c.Description)

	matchCandidate := dedup.Candidate{
		Title: c.Title, StartDate: c.StartDate, VenueID: c.VenueID,
		CityID: c.CityID, URL: c.URL, EventType: c.EventType,
	}
	if existing, _ := idx.Find(matchCandidate); existing != nil {
		changed := mergeInto(existing, c)
		if isBabyFriendly && !existing.IsBabyFriendly {
			existing.IsBabyFriendly = true
			changed = append(changed, "is_baby_friendly")
		}
		if len(changed) > 0 {
			if err := tx.Save(existing).Error; err != nil {
				return nil, false, false, errors.NewStoreError("ingest.merge_save", err)
			}
		}
		return existing, false, false, nil
	}

	if governor != nil && c.VenueID != nil {
		var admitErr error
		if c.EventType == models.EventTypeExhibition {
			website := ""
			var venue models.Venue
			if err := tx.Select("website").First(&venue, *c.VenueID).Error; err == nil && venue.Website != nil {
				website = *venue.Website
			}
			admitErr = governor.AdmitExhibition(*c.VenueID, website)
		} else {
			admitErr = governor.AdmitEvent(*c.VenueID)
		}
		if admitErr != nil {
			return nil, false, true, nil
		}
	}

	startTime, endTime := applyDefaultTimes(c)

	event := &models.Event{
		Title:                   c.Title,
		EventType:               c.EventType,
		StartDate:               c.StartDate,
		EndDate:                 c.EndDate,
		Description:             c.Description,
		URL:                     c.URL,
		ImageURL:                c.ImageURL,
		StartLocation:           c.StartLocation,
		EndLocation:             c.EndLocation,
		IsRegistrationRequired:  c.IsRegistrationRequired,
		RegistrationURL:         c.RegistrationURL,
		IsOnline:                c.IsOnline,
		IsBabyFriendly:          isBabyFriendly,
		IsPermanent:             c.IsPermanent,
		SourceURL:               c.SourceURL,
		VenueID:                 c.VenueID,
		CityID:                  c.CityID,
		TypeExtension:           c.TypeExtension,
	}
	if startTime != nil {
		ft := models.FloatingTimeColumn(*startTime)
		event.StartTime = &ft
	}
	if endTime != nil {
		ft := models.FloatingTimeColumn(*endTime)
		event.EndTime = &ft
	}

	if err := tx.Create(event).Error; err != nil {
		return nil, false, false, errors.NewStoreError("ingest.create", err)
	}
	return event, true, false, nil
}

// applyDefaultTimes re-applies the music/performance 23:59 default
// defensively at insert time (spec.md §4.6's "redundant with C3").
func applyDefaultTimes(c Candidate) (*models.FloatingTime, *models.FloatingTime) {
	startTime, endTime := c.StartTime, c.EndTime
	if c.EventType == models.EventTypeMusic && startTime != nil && endTime == nil {
		endTime = &models.FloatingTime{Hour: 23, Minute: 59}
	}
	return startTime, endTime
}
