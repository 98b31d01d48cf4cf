package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"culturefeed-backend/internal/extract"
)

func TestInWindow_ExhibitionOverlapsRangeEvenIfStartedEarlier(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	assert.True(t, InWindow(start, &end, from, to))
}

func TestInWindow_SingleDayEventOutsideRangeExcluded(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	assert.False(t, InWindow(start, nil, from, to))
}

func TestInWindow_AllRangeMatchesEverything(t *testing.T) {
	assert.True(t, InWindow(time.Now(), nil, time.Time{}, time.Time{}))
}

func TestWindow_TodayIsSingleDay(t *testing.T) {
	today := time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC)
	from, to := Window(extract.TimeRangeToday, today, nil, nil)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, from, to)
}

func TestWindow_CustomUsesProvidedBounds(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	gotFrom, gotTo := Window(extract.TimeRangeCustom, time.Now(), &from, &to)
	assert.Equal(t, from, gotFrom)
	assert.Equal(t, to, gotTo)
}
