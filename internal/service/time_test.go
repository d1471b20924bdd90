package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeInput(t *testing.T) {
	loc := time.UTC

	parsed, err := parseTimeInput("2026-03-12T08:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 8, 30, 0, 0, time.UTC), parsed.UTC())

	parsed, err = parseTimeInput("2026-03-12T08:30:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 8, 30, 0, 0, loc), parsed)

	parsed, err = parseTimeInput("2026-03-12", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, loc), parsed)

	_, err = parseTimeInput("12.03.2026", loc)
	assert.Error(t, err)
}

func TestMondayOfWeek(t *testing.T) {
	loc := time.UTC

	// 2026-03-12 is a Thursday.
	thursday := time.Date(2026, 3, 12, 15, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), mondayOfWeek(thursday))

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	assert.Equal(t, monday, mondayOfWeek(monday))

	sunday := time.Date(2026, 3, 15, 23, 59, 0, 0, loc)
	assert.Equal(t, monday, mondayOfWeek(sunday))
}

func TestPreviousWeekRange(t *testing.T) {
	loc := time.UTC

	from, to := previousWeekRange(time.Date(2026, 3, 12, 10, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), from)
	// The range ends just before this week's Monday midnight, still on Sunday.
	assert.Equal(t, "2026-03-08", to.Format("2006-01-02"))
	assert.True(t, to.Before(time.Date(2026, 3, 9, 0, 0, 0, 0, loc)))
}

func TestWeekdayIndex(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, 0, weekdayIndex(time.Date(2026, 3, 9, 12, 0, 0, 0, loc)))  // Monday
	assert.Equal(t, 3, weekdayIndex(time.Date(2026, 3, 12, 12, 0, 0, 0, loc))) // Thursday
	assert.Equal(t, 6, weekdayIndex(time.Date(2026, 3, 15, 12, 0, 0, 0, loc))) // Sunday
}
