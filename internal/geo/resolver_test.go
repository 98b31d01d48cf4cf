package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_FallsBackToStateTimezone(t *testing.T) {
	r := NewResolver(nil) // no geocode client configured
	res := r.Resolve(context.Background(), "Phoenix", "United States", "AZ")
	assert.Equal(t, "America/Phoenix", res.Timezone)
}

func TestResolver_DefaultsToUTCWhenUnresolved(t *testing.T) {
	r := NewResolver(nil)
	res := r.Resolve(context.Background(), "Nowhereville", "Atlantis", "")
	assert.Equal(t, "UTC", res.Timezone)
}

func TestResolver_CachesResult(t *testing.T) {
	r := NewResolver(nil)
	first := r.Resolve(context.Background(), "Phoenix", "United States", "AZ")
	second := r.Resolve(context.Background(), "Phoenix", "United States", "AZ")
	assert.Equal(t, first, second)
}
