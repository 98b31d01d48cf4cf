package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBabyFriendly_MatchesKeyword(t *testing.T) {
	assert.True(t, IsBabyFriendly("Toddler Storytime", ""))
}

func TestIsBabyFriendly_Stable(t *testing.T) {
	title, desc := "Family Program: Art Walk", "Bring a stroller"
	assert.Equal(t, IsBabyFriendly(title, desc), IsBabyFriendly(title, desc))
}

func TestIsBabyFriendly_NoMatch(t *testing.T) {
	assert.False(t, IsBabyFriendly("Evening Jazz Concert", "Doors at 8pm"))
}
