package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVenueName_PreservesAcronym(t *testing.T) {
	got, ok := FormatVenueName("the nga sculpture garden")
	assert.True(t, ok)
	assert.Equal(t, "The NGA Sculpture Garden", got)
}

func TestFormatCityName_TitleCases(t *testing.T) {
	got, ok := FormatCityName("washington")
	assert.True(t, ok)
	assert.Equal(t, "Washington", got)
}
