package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowTilesTheDay(t *testing.T) {
	day, err := ParseDate("2025-06-02", time.UTC)
	require.NoError(t, err)

	var prevEnd time.Time
	for i, label := range Labels {
		start, end := Window(day, label)
		assert.Equal(t, 8*time.Hour, end.Sub(start), "window %s must span exactly 8 hours", label)
		if i == 0 {
			assert.Equal(t, time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC), start)
		} else {
			assert.Equal(t, prevEnd, start, "windows must tile with no gap or overlap")
		}
		prevEnd = end
	}

	// Night ends at 06:00 on the next calendar day.
	_, nightEnd := Window(day, LabelNight)
	assert.Equal(t, time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC), nightEnd)
}

func TestWindowUnknownLabelPanics(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Panics(t, func() { Window(day, Label("lunch")) })
}

func TestParseLabel(t *testing.T) {
	for _, label := range Labels {
		parsed, ok := ParseLabel(string(label))
		assert.True(t, ok)
		assert.Equal(t, label, parsed)
	}
	_, ok := ParseLabel("evening")
	assert.False(t, ok)
}

func TestAnchorDate(t *testing.T) {
	// 23:00 stays on its own day.
	late := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AnchorDate(late, time.UTC))

	// 00:00-05:59 belongs to the previous day's night shift.
	early := time.Date(2025, 6, 3, 5, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), AnchorDate(early, time.UTC))

	// 06:00 is the new day.
	morning := time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), AnchorDate(morning, time.UTC))
}

func TestOverlapsHalfOpen(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mStart, mEnd := Window(day, LabelMorning)
	aStart, aEnd := Window(day, LabelAfternoon)

	// Adjacent windows share a boundary instant but do not overlap.
	assert.False(t, Overlaps(mStart, mEnd, aStart, aEnd))
	assert.True(t, Overlaps(mStart, mEnd.Add(time.Minute), aStart, aEnd))
	assert.True(t, Overlaps(mStart, mEnd, mStart, mEnd))
}
