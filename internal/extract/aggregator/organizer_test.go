package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrganizerID_FindsTrailingDigits(t *testing.T) {
	id, ok := ExtractOrganizerID("https://www.eventbrite.com/o/national-gallery-12345678")
	assert.True(t, ok)
	assert.Equal(t, "12345678", id)
}

func TestExtractOrganizerID_NoDigitsReturnsFalse(t *testing.T) {
	_, ok := ExtractOrganizerID("https://www.eventbrite.com/o/national-gallery")
	assert.False(t, ok)
}

func TestExtractOrganizerID_TooFewDigitsRejected(t *testing.T) {
	_, ok := ExtractOrganizerID("https://example.com/page-1234")
	assert.False(t, ok)
}

func TestExtractOrganizerID_TrailingSlashTolerated(t *testing.T) {
	id, ok := ExtractOrganizerID("https://example.com/o/123456789012/")
	assert.True(t, ok)
	assert.Equal(t, "123456789012", id)
}
