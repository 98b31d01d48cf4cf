package ingest

import (
	"testing"

	"culturefeed-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeInto_OverwritesNullDescription(t *testing.T) {
	existing := &models.Event{EventType: models.EventTypeGeneric}
	changed := mergeInto(existing, Candidate{Description: "A tour of the east wing"})
	assert.Contains(t, changed, "description")
	assert.Equal(t, "A tour of the east wing", existing.Description)
}

func TestMergeInto_OnlyOverwritesDescriptionWhenLonger(t *testing.T) {
	existing := &models.Event{Description: "A longer existing description here", EventType: models.EventTypeGeneric}
	changed := mergeInto(existing, Candidate{Description: "short"})
	assert.NotContains(t, changed, "description")
}

func TestMergeInto_SpecializesGenericEventType(t *testing.T) {
	existing := &models.Event{EventType: models.EventTypeGeneric}
	changed := mergeInto(existing, Candidate{EventType: models.EventTypeTalk})
	assert.Contains(t, changed, "event_type")
	assert.Equal(t, models.EventTypeTalk, existing.EventType)
}

func TestMergeInto_NeverDemotesSpecificEventType(t *testing.T) {
	existing := &models.Event{EventType: models.EventTypeTalk}
	changed := mergeInto(existing, Candidate{EventType: models.EventTypeGeneric})
	assert.NotContains(t, changed, "event_type")
	assert.Equal(t, models.EventTypeTalk, existing.EventType)
}
