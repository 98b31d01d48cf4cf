package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGovernor_ExhibitionCeiling(t *testing.T) {
	g := NewGovernor(2, 10)
	assert.NoError(t, g.AdmitExhibition(1, ""))
	assert.NoError(t, g.AdmitExhibition(1, ""))
	assert.Error(t, g.AdmitExhibition(1, ""))
}

func TestGovernor_UnionAcrossSharedWebsite(t *testing.T) {
	g := NewGovernor(2, 10)
	g.RegisterVenueWebsite(1, "https://smith.si")
	g.RegisterVenueWebsite(2, "https://smith.si")

	assert.NoError(t, g.AdmitExhibition(1, "https://smith.si"))
	assert.NoError(t, g.AdmitExhibition(2, "https://smith.si"))
	// third admission for either venue exceeds the union ceiling of 2
	assert.Error(t, g.AdmitExhibition(1, "https://smith.si"))
	assert.Error(t, g.AdmitExhibition(2, "https://smith.si"))
}

func TestGovernor_EventCeilingIndependentOfExhibitions(t *testing.T) {
	g := NewGovernor(1, 1)
	assert.NoError(t, g.AdmitExhibition(1, ""))
	assert.NoError(t, g.AdmitEvent(1))
	assert.Error(t, g.AdmitEvent(1))
}
