package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	got, ok := CleanText("  Finding   Awe  \n")
	assert.True(t, ok)
	assert.Equal(t, "Finding Awe", got)
}

func TestCleanText_EmptyYieldsNull(t *testing.T) {
	_, ok := CleanText("   ")
	assert.False(t, ok)
}

func TestCleanURL_StripsTrackingParams(t *testing.T) {
	got, ok := CleanURL("https://NGA.gov/events?utm_source=newsletter&id=42")
	assert.True(t, ok)
	assert.Equal(t, "https://nga.gov/events?id=42", got)
}

func TestCleanURL_RejectsNonHTTP(t *testing.T) {
	_, ok := CleanURL("ftp://example.com/file")
	assert.False(t, ok)
}

func TestCleanEmail_LowercasesAddress(t *testing.T) {
	got, ok := CleanEmail("Info@NGA.gov")
	assert.True(t, ok)
	assert.Equal(t, "info@nga.gov", got)
}

func TestCleanEmail_InvalidYieldsNull(t *testing.T) {
	_, ok := CleanEmail("not-an-email")
	assert.False(t, ok)
}

func TestCleanPhone_StripsFormatting(t *testing.T) {
	got, ok := CleanPhone("(202) 555-0100")
	assert.True(t, ok)
	assert.Equal(t, "2025550100", got)
}

func TestCleanNumeric_ParsesCurrency(t *testing.T) {
	got, ok := CleanNumeric("$1,200.50")
	assert.True(t, ok)
	assert.Equal(t, 1200.50, got)
}

func TestCleanInteger_Truncates(t *testing.T) {
	got, ok := CleanInteger("42.9")
	assert.True(t, ok)
	assert.Equal(t, int64(42), got)
}
